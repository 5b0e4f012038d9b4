package models

// SkipReason identifies why an event was gated out of the pipeline.
// Skips are expected control flow, not errors.
type SkipReason string

const (
	SkipDuplicate SkipReason = "duplicate"
	SkipTooOld    SkipReason = "too_old"
	SkipReply     SkipReason = "reply"
	SkipEmpty     SkipReason = "empty"
)

// PublishStatus is the terminal state of one event's trip through the pipeline.
type PublishStatus string

const (
	StatusPublished PublishStatus = "published"
	StatusSkipped   PublishStatus = "skipped"
	StatusFailed    PublishStatus = "failed"
)

// PublishResult is the tagged outcome of processing a single event.
type PublishResult struct {
	Status PublishStatus
	Reason SkipReason
	Err    error
}

func Published() PublishResult {
	return PublishResult{Status: StatusPublished}
}

func Skipped(reason SkipReason) PublishResult {
	return PublishResult{Status: StatusSkipped, Reason: reason}
}

func PublishFailed(err error) PublishResult {
	return PublishResult{Status: StatusFailed, Err: err}
}
