package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BusinessEvents traces domain operations above the HTTP/DB layers,
// e.g. "feed page served" or "post was liked".
type BusinessEvents struct {
	tracer trace.Tracer
}

// NewBusinessEvents creates a new business events tracer
func NewBusinessEvents() *BusinessEvents {
	return &BusinessEvents{
		tracer: otel.Tracer("onlycodes/business-events"),
	}
}

// FeedEventAttrs describes one feed page request
type FeedEventAttrs struct {
	Page int
	Size int
}

// TraceGetFeed creates a span for a feed page
func (be *BusinessEvents) TraceGetFeed(ctx context.Context, feed string, attrs FeedEventAttrs) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "feed.get",
		trace.WithAttributes(
			attribute.String("feed.type", feed),
			attribute.Int("feed.page", attrs.Page),
			attribute.Int("feed.size", attrs.Size),
		),
	)
}

// TraceEngagement creates a span for like/unlike/follow/unfollow
func (be *BusinessEvents) TraceEngagement(ctx context.Context, action, actorID, targetID string) (context.Context, trace.Span) {
	return be.tracer.Start(ctx, "engagement."+action,
		trace.WithAttributes(
			attribute.String("engagement.actor_id", actorID),
			attribute.String("engagement.target_id", targetID),
		),
	)
}

// RecordResultCount annotates the span with the number of items returned and the total
func RecordResultCount(span trace.Span, count int, total int64) {
	span.SetAttributes(
		attribute.Int("result.count", count),
		attribute.Int64("result.total", total),
	)
}

// RecordError marks the span failed
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
