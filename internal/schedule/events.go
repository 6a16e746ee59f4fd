package schedule

import (
	"context"
	"fmt"

	"github.com/recallhq/recall/internal/tier"
)

// Collaborator events consumed by the engine. Content lifecycle, review
// submission and billing each dispatch explicit events instead of the source
// product's implicit persistence hooks, so the engine never depends on how or
// where collaborators store their data.

// ContentCreated is dispatched by the content-lifecycle collaborator when a
// content item is created for a learner.
type ContentCreated struct {
	LearnerID string
	ContentID string
}

// ContentRemoved is dispatched when a content item is removed or the
// learner's relationship to it ends.
type ContentRemoved struct {
	LearnerID string
	ContentID string
}

// ReviewCompleted is dispatched by the review-submission collaborator once a
// review has a final graded result.
type ReviewCompleted struct {
	Command ReviewCommand
}

// TierChanged is dispatched by the billing collaborator after a subscription
// change takes effect.
type TierChanged struct {
	LearnerID string
	OldTier   tier.Tier
	NewTier   tier.Tier
}

// EventConsumer maps collaborator events onto engine operations.
type EventConsumer struct {
	engine *Engine
}

// NewEventConsumer creates a new EventConsumer.
func NewEventConsumer(engine *Engine) *EventConsumer {
	return &EventConsumer{engine: engine}
}

// Consume dispatches one event to the matching engine operation. Unknown
// event types are an error: silently dropping a collaborator event would
// corrupt the learner's schedule state.
func (c *EventConsumer) Consume(ctx context.Context, event any) error {
	switch ev := event.(type) {
	case ContentCreated:
		_, err := c.engine.CreateInitialSchedule(ctx, ev.LearnerID, ev.ContentID)
		return err
	case ContentRemoved:
		return c.engine.Deactivate(ctx, ev.LearnerID, ev.ContentID)
	case ReviewCompleted:
		_, err := c.engine.CompleteReview(ctx, ev.Command)
		return err
	case TierChanged:
		return c.engine.ReconcileTierChange(ctx, ev.LearnerID, ev.OldTier, ev.NewTier)
	default:
		return fmt.Errorf("unknown event type %T", event)
	}
}
