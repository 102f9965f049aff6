// Package scheduler implements the SRJF job scheduler (spec §4.7): a
// single-threaded selection loop over a ready queue guarded by one
// mutex/condition-variable pair, quantum-based time slicing for Demo
// jobs, mid-quantum preemption by ShellCmd arrivals, and timeline
// recording for the queue-drain log line.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nextlevelbuilder/shelld/internal/activitylog"
	"github.com/nextlevelbuilder/shelld/internal/config"
	"github.com/nextlevelbuilder/shelld/internal/execpipe"
	"github.com/nextlevelbuilder/shelld/internal/job"
	"github.com/nextlevelbuilder/shelld/internal/shell"
)

// Scheduler owns the ready queue and every piece of global mutable state
// spec §9 calls out: the queue itself, the currently running job handle,
// last_job_id, global_time, and the timeline. All of it lives behind one
// mutex; nothing here duplicates a lock for a subset of this state.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	ready     []*job.Job
	current   *job.Job
	lastJobID int
	nextJobID int

	globalTime int
	timeline   []activitylog.TimelineEntry

	stopped bool

	log   *activitylog.Logger
	cfgFn func() *config.Config
}

// New builds a Scheduler that writes its fixed-schema events to log and
// takes its quantum lengths, pipeline limits, and capture buffer sizing
// from whatever cfgFn returns (spec §6's "fixed constants", made
// overridable per SPEC_FULL.md). cfgFn is called once per job run rather
// than once at startup, so passing a config.Watcher's Current method
// picks up a hot-reloaded shelld.json5 without a restart. A nil cfgFn
// always returns config.Default().
func New(log *activitylog.Logger, cfgFn func() *config.Config) *Scheduler {
	if cfgFn == nil {
		cfgFn = config.Default
	}
	s := &Scheduler{log: log, cfgFn: cfgFn}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// NextJobID issues the next monotonically increasing job ID.
func (s *Scheduler) NextJobID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJobID++
	return s.nextJobID
}

// Enqueue admits a newly created job at the tail of the ready queue and
// logs its creation.
func (s *Scheduler) Enqueue(j *job.Job) {
	s.mu.Lock()
	s.ready = append(s.ready, j)
	s.mu.Unlock()
	s.log.Created(j.ClientID, j.InitialBurst)
	s.cond.Signal()
}

// DropClient removes any not-yet-running jobs belonging to clientID from
// the ready queue, matching spec §3's "Jobs are ... destroyed ... when
// the client disconnects." A job already selected and running is left to
// finish; its output will simply fail to reach a closed socket (spec §5).
func (s *Scheduler) DropClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.ready[:0]
	for _, j := range s.ready {
		if j.ClientID != clientID {
			kept = append(kept, j)
		}
	}
	s.ready = kept
}

// Stop signals the run loop to exit once the ready queue drains.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Run is the scheduler's single selection loop. It blocks until ctx is
// canceled or Stop is called and the ready queue is empty.
func (s *Scheduler) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	for {
		s.mu.Lock()
		for len(s.ready) == 0 && !s.stopped {
			if len(s.timeline) > 0 {
				entries := s.timeline
				s.timeline = nil
				s.mu.Unlock()
				s.log.Timeline(entries)
				s.mu.Lock()
			}
			s.cond.Wait()
		}
		if len(s.ready) == 0 && s.stopped {
			s.mu.Unlock()
			return
		}

		winner := s.selectLocked(nil, true)
		if winner != nil && winner.Kind == job.Demo {
			s.lastJobID = winner.ID
		}
		s.current = winner
		s.mu.Unlock()

		if winner == nil {
			continue
		}

		if winner.Kind == job.ShellCmd {
			s.runShellCmd(ctx, winner)
		} else {
			s.runDemoQuantum(ctx, winner)
		}

		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
	}
}

// runShellCmd executes a shell job to completion in one scheduling turn
// (spec §4.7 "Running a ShellCmd"): non-preemptible, streamed as a single
// output frame followed by the EOF sentinel.
func (s *Scheduler) runShellCmd(ctx context.Context, j *job.Job) {
	cfg := s.cfgFn()
	var output []byte
	stages, err := shell.ParseLine(j.Command, cfg)
	switch {
	case err != nil:
		output = []byte(shell.Message(err))
	case len(stages) == 1:
		output = execpipe.ExecuteSingle(ctx, stages[0], cfg)
	default:
		output = execpipe.ExecutePipeline(ctx, stages, cfg)
	}

	if sendErr := j.Client.Send(output); sendErr != nil {
		slog.Warn("scheduler: send shell output failed", "client", j.ClientID, "error", sendErr)
	}
	j.BytesSent += int64(len(output))
	if sendErr := j.Client.SendEOF(); sendErr != nil {
		slog.Warn("scheduler: send EOF failed", "client", j.ClientID, "error", sendErr)
	}
	s.log.ByteSummary(j.ClientID, j.BytesSent)
	s.log.EndedShell(j.ClientID)
}

// runDemoQuantum runs one quantum of a demo job (spec §4.7 "Running a
// Demo quantum"): a per-second sleep/stream/preemption-probe loop, bounded
// by cfg.FirstQuantumSeconds or cfg.SubsequentQuantum depending on
// rounds_run.
func (s *Scheduler) runDemoQuantum(ctx context.Context, j *job.Job) {
	cfg := s.cfgFn()
	quantum := cfg.SubsequentQuantum
	if j.RoundsRun == 0 {
		quantum = cfg.FirstQuantumSeconds
		s.log.Started(j.ClientID, j.RemainingTime)
	} else {
		s.log.Running(j.ClientID, j.RemainingTime)
	}

	preempted := false
	slices := 0
	for slices < quantum && j.RemainingTime > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}

		progress := j.InitialBurst - j.RemainingTime + 1
		line := fmt.Sprintf("Demo %d/%d\n", progress, j.InitialBurst)
		if sendErr := j.Client.Send([]byte(line)); sendErr != nil {
			slog.Warn("scheduler: send demo progress failed", "client", j.ClientID, "error", sendErr)
		}
		j.BytesSent += int64(len(line))
		j.RemainingTime--
		slices++

		s.mu.Lock()
		candidate := s.selectLocked(j, false)
		s.mu.Unlock()
		if candidate != nil && candidate.Kind == job.ShellCmd {
			preempted = true
			break
		}
	}

	j.RoundsRun++
	s.mu.Lock()
	s.globalTime += slices
	s.timeline = append(s.timeline, activitylog.TimelineEntry{ClientID: j.ClientID, Time: s.globalTime})
	s.mu.Unlock()

	if j.RemainingTime == 0 {
		if sendErr := j.Client.SendEOF(); sendErr != nil {
			slog.Warn("scheduler: send EOF failed", "client", j.ClientID, "error", sendErr)
		}
		s.log.ByteSummary(j.ClientID, j.BytesSent)
		s.log.EndedDemo(j.ClientID)
		return
	}

	if preempted {
		s.log.Preempted(j.ClientID, j.RemainingTime)
	} else {
		s.log.Waiting(j.ClientID, j.RemainingTime)
	}
	s.requeueHead(j)
}

// requeueHead re-admits a partially run demo job at the head of the ready
// queue, per spec §5's ordering guarantee.
func (s *Scheduler) requeueHead(j *job.Job) {
	s.mu.Lock()
	s.ready = append([]*job.Job{j}, s.ready...)
	s.mu.Unlock()
	s.cond.Signal()
}
