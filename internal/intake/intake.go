// Package intake implements the per-client reader thread (spec §4.8):
// one goroutine per connected client reads framed command strings,
// classifies each as a Demo or ShellCmd job, and enqueues it with the
// scheduler.
package intake

import (
	"strconv"
	"strings"

	"github.com/nextlevelbuilder/shelld/internal/activitylog"
	"github.com/nextlevelbuilder/shelld/internal/job"
	"github.com/nextlevelbuilder/shelld/internal/scheduler"
	"github.com/nextlevelbuilder/shelld/internal/wire"
)

// defaultDemoBurst is used when a demo command's integer argument is
// absent or unparseable, per spec §4.8.
const defaultDemoBurst = 5

// Enqueuer is the subset of *scheduler.Scheduler the intake loop needs;
// an interface keeps this package testable without a real scheduler.
type Enqueuer interface {
	NextJobID() int
	Enqueue(j *job.Job)
	DropClient(clientID int)
}

var _ Enqueuer = (*scheduler.Scheduler)(nil)

// Conn is the subset of *wire.Conn the intake loop needs.
type Conn interface {
	ReadFrame() ([]byte, error)
	job.Sender
	Close() error
}

var _ Conn = (*wire.Conn)(nil)

// Handle runs the intake loop for one client connection until the peer
// sends "exit", disconnects, or a transport error occurs. It never
// returns an error: transport failures are local to this client (spec
// §7) and simply end the loop.
func Handle(clientID int, conn Conn, sched Enqueuer, log *activitylog.Logger) {
	log.Connect(clientID)
	defer func() {
		log.Disconnect(clientID)
		sched.DropClient(clientID)
		conn.Close()
	}()

	for {
		payload, err := conn.ReadFrame()
		if err != nil {
			return
		}
		line := string(payload)
		if line == "" {
			continue
		}
		log.Submit(clientID, line)
		if line == "exit" {
			return
		}

		kind, burst := classify(line)
		id := sched.NextJobID()
		var j *job.Job
		if kind == job.Demo {
			j = job.NewDemo(id, clientID, line, burst, conn)
		} else {
			j = job.NewShellCmd(id, clientID, line, conn)
		}
		sched.Enqueue(j)
	}
}

// classify implements spec §4.8's Demo-vs-ShellCmd rule: after stripping a
// single leading "./" or "/", a command beginning with "demo" (including
// the ambiguous "demo_other" case, per spec §9) is a Demo job. Its burst
// is an integer written directly after "demo" (as in "demo7"), or else the
// following whitespace-separated integer, defaulting to defaultDemoBurst
// when absent or unparseable. Everything else is a ShellCmd.
func classify(line string) (job.Kind, int) {
	stripped := strings.TrimPrefix(line, "./")
	stripped = strings.TrimPrefix(stripped, "/")
	if !strings.HasPrefix(stripped, "demo") {
		return job.ShellCmd, -1
	}

	burst := defaultDemoBurst
	fields := strings.Fields(stripped)
	if n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "demo")); err == nil {
		burst = n
	} else if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			burst = n
		}
	}
	return job.Demo, burst
}
