package judge

import (
	"sync"
	"time"

	"github.com/magurofly/magjudge/internal/config"
	"github.com/magurofly/magjudge/internal/validate"
	"github.com/sirupsen/logrus"
)

// sharedState is the mutable state a Client and its Worker both hold
// independent references to — a reference-counted handle to a mutex-guarded
// container, not an ownership cycle (spec.md §9 "Design Notes").
type sharedState struct {
	queueMu sync.Mutex
	queue   []Submission

	statusMu sync.Mutex
	statuses map[string]*Status

	// wake is a single-slot, non-blocking wakeup signal: Submit sends
	// without blocking, the worker blocks receiving it when idle
	// (spec.md §5).
	wake chan struct{}
}

// Client is the thread-safe facade (C4) used by an external API layer to
// enqueue submissions and read status snapshots. Both of its operations are
// total: no user-visible failure given the lock discipline of spec.md §5,
// aside from Submit's explicit BadRequest rejection of a malformed id.
type Client struct {
	state *sharedState
}

// NewClient constructs a Client backed by a freshly started Worker. Prefer
// this explicit construction over a process-wide singleton — inject the
// returned Client into whatever external API layer needs it (spec.md §9
// "Global client singleton").
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	state := &sharedState{
		statuses: make(map[string]*Status),
		wake:     make(chan struct{}, 1),
	}

	worker := newWorker(state, cfg, log)
	worker.start()

	return &Client{state: state}
}

// Submit validates submission.ID, inserts a fresh pending Status, pushes the
// submission onto the waiting queue, and wakes the worker. It never blocks
// on the worker and never returns a result value other than the validation
// error (spec.md §4.4).
func (c *Client) Submit(submission Submission) error {
	err := validate.IsSubmissionID(submission.ID)
	if err != nil {
		return newError(KindBadRequest, "invalid submission id: %w", err)
	}

	if submission.SubmittedTime.IsZero() {
		submission.SubmittedTime = time.Now()
	}

	// Lock ordering per spec.md §5: status map before queue.
	c.state.statusMu.Lock()
	c.state.statuses[submission.ID] = newPendingStatus(len(submission.Inputs))
	c.state.statusMu.Unlock()

	c.state.queueMu.Lock()
	c.state.queue = append(c.state.queue, submission)
	c.state.queueMu.Unlock()

	// Non-blocking send: the worker either picks this up on its next idle
	// receive, or is already draining and will see it on the next pop.
	select {
	case c.state.wake <- struct{}{}:
	default:
	}

	return nil
}

// UseStatus calls f with submissionID's live status (nil if not found)
// while holding the status-map lock, and returns f's result. f must
// not retain the pointer it's given beyond the call — call Status.Snapshot
// first if the caller needs to keep it.
func UseStatus[T any](c *Client, submissionID string, f func(*Status) T) T {
	c.state.statusMu.Lock()
	defer c.state.statusMu.Unlock()

	return f(c.state.statuses[submissionID])
}
