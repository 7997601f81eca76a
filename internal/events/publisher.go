package events

import "context"

// Topics emitted by the rehabilitation core.
const (
	TopicRecommendationCreated = "rehab.recommendation.created"
	TopicProgressUpdated       = "rehab.progress.updated"
	TopicMedicalReportAdded    = "medical.report.added"
	TopicCounselingNoteAdded   = "counseling.note.added"
)

// Publisher is fire-and-forget: implementations log delivery failures and
// never propagate them to the caller.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{})
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(ctx context.Context, topic string, payload interface{}) {}
