package asset

import (
	"strings"

	"pool-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyAssetName = errs.New("asset name cannot be empty")
	ErrNotPoolAsset   = errs.New("asset is not a pool device")
	ErrAssetNotFound  = errs.New("asset not found")
)

// Status values are owned by the asset-management collaborator; only Pool
// is interpreted here.
const StatusPool = "pool"

// Asset is the read-only view of a device the booking engine needs.
type Asset struct {
	id           uuid.UUID
	name         string
	isPoolDevice bool
	status       string
}

func NewAsset(id uuid.UUID, name string, isPoolDevice bool, status string) (*Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyAssetName
	}
	return &Asset{
		id:           id,
		name:         name,
		isPoolDevice: isPoolDevice,
		status:       status,
	}, nil
}

func (a *Asset) EnsureBookable() error {
	if !a.isPoolDevice {
		return ErrNotPoolAsset
	}
	return nil
}

func (a *Asset) ID() uuid.UUID      { return a.id }
func (a *Asset) Name() string       { return a.name }
func (a *Asset) IsPoolDevice() bool { return a.isPoolDevice }
func (a *Asset) Status() string     { return a.status }
