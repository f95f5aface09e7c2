package judge

// State is a submission's position along the monotone state DAG of
// spec.md §3: pending -> compiling -> {compile_error, running},
// running -> {finished, system_error}. The worker also moves running ->
// compile_error when the compiler exits non-zero, since it stores the
// compile result and enters running before inspecting its status. No
// backward transitions occur.
type State string

const (
	StatePending      State = "pending"
	StateCompiling    State = "compiling"
	StateCompileError State = "compile_error"
	StateRunning      State = "running"
	StateFinished     State = "finished"
	StateSystemError  State = "system_error"
)

// CompileResult is the outcome of invoking the configured compiler once.
type CompileResult struct {
	Status int    `json:"status"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// ExecutionResult is the outcome of running the compiled program once
// against a single input.
type ExecutionResult struct {
	Status int    `json:"status"`
	TimeMs int64  `json:"time_ms"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Status is the mutable, worker-owned, facade-read view of one submission.
// RunResults has exactly len(inputs) slots; a nil slot means "not yet run or
// failed to run" (spec.md §3 invariant 4).
type Status struct {
	State         State              `json:"state"`
	CompileResult *CompileResult     `json:"compile_result"`
	RunResults    []*ExecutionResult `json:"run_results"`
}

// Snapshot returns a deep copy safe to hand to a caller after the status-map
// lock has been released — UseStatus hands the caller the live pointer only
// for the duration of the callback; callers that need to retain state past
// the callback should call Snapshot first.
func (s *Status) Snapshot() *Status {
	if s == nil {
		return nil
	}

	out := &Status{State: s.State}

	if s.CompileResult != nil {
		cr := *s.CompileResult
		out.CompileResult = &cr
	}

	if s.RunResults != nil {
		out.RunResults = make([]*ExecutionResult, len(s.RunResults))
		for i, r := range s.RunResults {
			if r == nil {
				continue
			}

			rr := *r
			out.RunResults[i] = &rr
		}
	}

	return out
}

func newPendingStatus(inputCount int) *Status {
	return &Status{
		State:      StatePending,
		RunResults: make([]*ExecutionResult, inputCount),
	}
}
