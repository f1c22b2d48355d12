package tracing

import (
	"context"
	"log/slog"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Span wraps an X-Ray subsegment. The zero value is a no-op so call sites
// do not branch on whether tracing is enabled.
type Span struct {
	seg *xray.Segment
}

// Start opens a subsegment of the segment carried by ctx when enabled is set.
func Start(ctx context.Context, enabled bool, name string) (context.Context, Span) {
	if !enabled {
		return ctx, Span{}
	}
	ctx, seg := xray.BeginSubsegment(ctx, name)
	return ctx, Span{seg: seg}
}

func (s Span) AddMetadata(key string, value any) {
	if s.seg == nil {
		return
	}
	if err := s.seg.AddMetadata(key, value); err != nil {
		slog.Warn("failed to add trace metadata", "key", key, "error", err)
	}
}

// End closes the subsegment, recording err as a fault when non-nil.
func (s Span) End(err error) {
	if s.seg == nil {
		return
	}
	s.seg.Close(err)
}
