package judge

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/magurofly/magjudge/internal/config"
	"github.com/magurofly/magjudge/internal/judgelog"
)

// pendingRemoval is one entry of the retention reaper's queue: the
// submission's enqueue time paired with its id, appended in completion
// order (spec.md §4.3).
type pendingRemoval struct {
	submittedTime time.Time
	submissionID  string
}

// Worker is the single long-lived consumer (C3) that drains the waiting
// queue, drives each submission through Program, and reaps stale status
// entries. Exactly one Worker runs per Client; there is no parallelism
// across submissions (spec.md §4.3 "Ordering").
type Worker struct {
	state *sharedState
	cfg   *config.Config
	log   *logrus.Logger

	keepSubmissionTime time.Duration
	removeQueue        []pendingRemoval
}

func newWorker(state *sharedState, cfg *config.Config, log *logrus.Logger) *Worker {
	return &Worker{
		state:              state,
		cfg:                cfg,
		log:                log,
		keepSubmissionTime: time.Duration(cfg.Program.KeepSubmissionTimeSeconds) * time.Second,
	}
}

// start launches the worker's main loop in its own goroutine. The loop
// blocks on the shared wakeup channel when idle, and never runs
// concurrently with itself.
func (w *Worker) start() {
	go func() {
		for range w.state.wake {
			w.drain()
		}
	}()
}

// drain pops submissions off the front of the queue one at a time,
// releasing the queue lock between pops so producers can enqueue during a
// long run (spec.md §9, the resolved revision of the lock-holding question),
// processes each to a terminal state, and finally walks the retention queue.
func (w *Worker) drain() {
	for {
		submission, ok := w.popFront()
		if !ok {
			break
		}

		w.process(submission)
	}

	w.reap()
}

func (w *Worker) popFront() (Submission, bool) {
	w.state.queueMu.Lock()
	defer w.state.queueMu.Unlock()

	if len(w.state.queue) == 0 {
		return Submission{}, false
	}

	submission := w.state.queue[0]
	w.state.queue = w.state.queue[1:]

	return submission, true
}

// process drives one submission from pending through compiling to a
// terminal state, updating the shared status map as it goes, and appends
// its retention entry. It never panics on an expected error path: a failure
// to even construct the Program handle is reported as compile_error with a
// synthetic CompileResult (status -1, the error text as stderr).
func (w *Worker) process(submission Submission) {
	w.setStatus(submission.ID, func(s *Status) { s.State = StateCompiling })

	program, err := NewProgram(&w.cfg.Program, submission.ID, submission.SourceCode)
	if err != nil {
		judgelog.WithSubmission(w.log, submission.ID).WithField("error", err).
			Warn("Failed to construct program, reporting compile_error")

		w.setStatus(submission.ID, func(s *Status) {
			s.State = StateCompileError
			s.CompileResult = &CompileResult{Status: -1, Stdout: "", Stderr: err.Error()}
		})

		w.removeQueue = append(w.removeQueue, pendingRemoval{submission.SubmittedTime, submission.ID})

		return
	}

	defer program.Close()

	compileResult := program.CompileResult()

	w.setStatus(submission.ID, func(s *Status) {
		s.State = StateRunning
		s.CompileResult = compileResult
	})

	if compileResult.Status == 0 {
		for i, input := range submission.Inputs {
			result, runErr := program.Run(input)
			if runErr != nil {
				judgelog.WithSubmission(w.log, submission.ID).WithFields(logrus.Fields{"input": i, "error": runErr}).
					Warn("Run failed, leaving result slot unset")

				continue
			}

			index := i

			w.setStatus(submission.ID, func(s *Status) {
				s.RunResults[index] = result
			})
		}

		w.setStatus(submission.ID, func(s *Status) { s.State = StateFinished })
	} else {
		w.setStatus(submission.ID, func(s *Status) { s.State = StateCompileError })
	}

	w.removeQueue = append(w.removeQueue, pendingRemoval{submission.SubmittedTime, submission.ID})
}

// setStatus mutates submissionID's status under the status-map lock, if it
// is still present. The lock is held only for the duration of the mutation,
// never across I/O or a subprocess wait (spec.md §5).
func (w *Worker) setStatus(submissionID string, mutate func(*Status)) {
	w.state.statusMu.Lock()
	defer w.state.statusMu.Unlock()

	status, ok := w.state.statuses[submissionID]
	if !ok {
		return
	}

	mutate(status)
}

// reap walks the retention queue front-to-back, removing entries whose
// submittedTime is older than keepSubmissionTime and deleting the matching
// status map entry, stopping at the first entry still within the window
// (spec.md §4.3 step 3).
func (w *Worker) reap() {
	now := time.Now()

	for len(w.removeQueue) > 0 {
		front := w.removeQueue[0]
		if now.Sub(front.submittedTime) <= w.keepSubmissionTime {
			break
		}

		w.removeQueue = w.removeQueue[1:]

		w.state.statusMu.Lock()
		delete(w.state.statuses, front.submissionID)
		w.state.statusMu.Unlock()
	}
}
