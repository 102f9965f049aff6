package intake

import (
	"bytes"
	"io"
	"testing"

	"github.com/nextlevelbuilder/shelld/internal/activitylog"
	"github.com/nextlevelbuilder/shelld/internal/job"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line      string
		wantKind  job.Kind
		wantBurst int
	}{
		{"echo hi", job.ShellCmd, -1},
		{"demo 5", job.Demo, 5},
		{"demo", job.Demo, defaultDemoBurst},
		{"demo abc", job.Demo, defaultDemoBurst},
		{"./demo 3", job.Demo, 3},
		{"/demo 3", job.Demo, 3},
		{"demo_other 1", job.Demo, 1},
		{"demo -2", job.Demo, -2},
	}
	for _, c := range cases {
		kind, burst := classify(c.line)
		if kind != c.wantKind || burst != c.wantBurst {
			t.Errorf("classify(%q) = (%v, %d), want (%v, %d)", c.line, kind, burst, c.wantKind, c.wantBurst)
		}
	}
}

// fakeEnqueuer records every enqueued job and every dropped client.
type fakeEnqueuer struct {
	nextID  int
	jobs    []*job.Job
	dropped []int
}

func (f *fakeEnqueuer) NextJobID() int {
	f.nextID++
	return f.nextID
}

func (f *fakeEnqueuer) Enqueue(j *job.Job) { f.jobs = append(f.jobs, j) }

func (f *fakeEnqueuer) DropClient(clientID int) { f.dropped = append(f.dropped, clientID) }

// scriptedConn replays a fixed sequence of lines as frames, then reports
// io.EOF, and discards anything sent back to the client.
type scriptedConn struct {
	lines []string
	idx   int
}

func (c *scriptedConn) ReadFrame() ([]byte, error) {
	if c.idx >= len(c.lines) {
		return nil, io.EOF
	}
	line := c.lines[c.idx]
	c.idx++
	return []byte(line), nil
}

func (c *scriptedConn) Send([]byte) error { return nil }
func (c *scriptedConn) SendEOF() error    { return nil }
func (c *scriptedConn) Close() error      { return nil }

func TestHandleEnqueuesJobsAndStopsOnExit(t *testing.T) {
	conn := &scriptedConn{lines: []string{"echo hi", "", "demo 2", "exit", "echo unreachable"}}
	enq := &fakeEnqueuer{}
	var logBuf bytes.Buffer
	log := activitylog.New(&logBuf)

	Handle(1, conn, enq, log)

	if len(enq.jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(enq.jobs))
	}
	if enq.jobs[0].Kind != job.ShellCmd {
		t.Errorf("job 0 kind = %v, want ShellCmd", enq.jobs[0].Kind)
	}
	if enq.jobs[1].Kind != job.Demo || enq.jobs[1].InitialBurst != 2 {
		t.Errorf("job 1 = %+v, want Demo burst 2", enq.jobs[1])
	}
	if len(enq.dropped) != 1 || enq.dropped[0] != 1 {
		t.Errorf("expected client 1 dropped once, got %v", enq.dropped)
	}
}

func TestHandleStopsOnTransportError(t *testing.T) {
	conn := &scriptedConn{lines: nil}
	enq := &fakeEnqueuer{}
	log := activitylog.New(&bytes.Buffer{})

	Handle(1, conn, enq, log)

	if len(enq.jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(enq.jobs))
	}
}
