// Package job defines the scheduler's unit of work (spec §3): the Job
// value, its two classes, and the streaming endpoint it reports progress
// and output to.
package job

// Kind discriminates the two job classes the scheduler treats differently.
type Kind int

const (
	// ShellCmd is a single command or pipeline, run to completion in one
	// scheduling turn and never preempted mid-run.
	ShellCmd Kind = iota
	// Demo is simulated long-running work, time-sliced into quanta and
	// preemptible by ShellCmd arrivals.
	Demo
)

func (k Kind) String() string {
	if k == Demo {
		return "demo"
	}
	return "shell"
}

// Sender streams a job's output back to its originating client. Job IDs
// and client IDs stay small monotonic integers regardless of how Sender is
// implemented, since the scheduler's tie-break cascade depends on
// comparable, enqueue-ordered integers.
type Sender interface {
	Send(payload []byte) error
	SendEOF() error
}

// Job is a scheduler-managed unit of work for one client command.
type Job struct {
	ID       int
	ClientID int
	Command  string
	Kind     Kind

	// Demo-only. ShellCmd jobs carry InitialBurst=-1, RemainingTime=0,
	// and never mutate RemainingTime or RoundsRun.
	InitialBurst  int
	RemainingTime int
	RoundsRun     int

	BytesSent int64

	Client Sender
}

// NewShellCmd builds a ShellCmd job. Its RemainingTime never changes: it
// either completes in its single scheduling turn or is discarded on
// client disconnect.
func NewShellCmd(id, clientID int, command string, client Sender) *Job {
	return &Job{
		ID:            id,
		ClientID:      clientID,
		Command:       command,
		Kind:          ShellCmd,
		InitialBurst:  -1,
		RemainingTime: 0,
		Client:        client,
	}
}

// NewDemo builds a Demo job with the given initial burst. A non-positive
// burst is coerced to 0, matching the original implementation's
// string-to-int coercion (spec §9): the job then completes immediately
// with zero progress frames.
func NewDemo(id, clientID int, command string, burst int, client Sender) *Job {
	if burst < 0 {
		burst = 0
	}
	return &Job{
		ID:            id,
		ClientID:      clientID,
		Command:       command,
		Kind:          Demo,
		InitialBurst:  burst,
		RemainingTime: burst,
		Client:        client,
	}
}

// Done reports whether a Demo job has no remaining work. Always false for
// ShellCmd, which completes synchronously within a single scheduler turn
// rather than being re-queued.
func (j *Job) Done() bool {
	return j.Kind == Demo && j.RemainingTime <= 0
}
