package judge

import "time"

// Submission is immutable once enqueued (spec.md §3).
type Submission struct {
	// ID must satisfy validate.IsSubmissionID; Client.Submit rejects it
	// otherwise (BadRequest, spec.md §7) before it ever reaches the queue.
	ID string

	// SubmittedTime is a monotonic timestamp taken at enqueue, used only to
	// decide when the worker's reaper may remove the submission's status.
	SubmittedTime time.Time

	// SourceCode is the raw program bytes to compile.
	SourceCode []byte

	// Inputs is the ordered sequence of stdin payloads, one run per entry.
	Inputs []string
}
