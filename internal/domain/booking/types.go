package booking

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusActive, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Holds reports whether a booking in this status still claims its asset
// for new reservations.
func (s Status) Holds() bool {
	return s == StatusReserved || s == StatusActive
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Condition string

const (
	ConditionGood       Condition = "good"
	ConditionDamaged    Condition = "damaged"
	ConditionIncomplete Condition = "incomplete"
	ConditionLost       Condition = "lost"
)

func (c Condition) String() string {
	return string(c)
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionDamaged, ConditionIncomplete, ConditionLost:
		return true
	default:
		return false
	}
}

func ParseCondition(v string) (Condition, error) {
	c := Condition(v)
	if !c.IsValid() {
		return "", ErrInvalidCondition
	}
	return c, nil
}

type Event string

const (
	EventCreate   Event = "create"
	EventActivate Event = "activate"
	EventCancel   Event = "cancel"
	EventReturn   Event = "return"
)

func (e Event) String() string {
	return string(e)
}
