package scheduler

import "github.com/nextlevelbuilder/shelld/internal/job"

// selectLocked implements the tie-break cascade of spec §4.7. Callers must
// hold s.mu. When remove is true the winner is detached from the ready
// queue atomically with the selection.
func (s *Scheduler) selectLocked(exclude *job.Job, remove bool) *job.Job {
	var candidates []*job.Job
	for _, c := range s.ready {
		if exclude != nil && c == exclude {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	var shellCmds, demos []*job.Job
	for _, c := range candidates {
		if c.Kind == job.ShellCmd {
			shellCmds = append(shellCmds, c)
		} else {
			demos = append(demos, c)
		}
	}

	var winner *job.Job
	if len(shellCmds) > 0 {
		winner = fifoOf(shellCmds)
	} else {
		winner = s.pickDemo(demos)
	}
	if winner == nil {
		return nil
	}
	if remove {
		s.removeLocked(winner)
	}
	return winner
}

// pickDemo applies steps 2 and 3 of the cascade: smallest remaining_time
// wins, with an anti-starvation tiebreak among equals.
func (s *Scheduler) pickDemo(demos []*job.Job) *job.Job {
	if len(demos) == 0 {
		return nil
	}
	min := demos[0].RemainingTime
	for _, d := range demos[1:] {
		if d.RemainingTime < min {
			min = d.RemainingTime
		}
	}
	var tied []*job.Job
	for _, d := range demos {
		if d.RemainingTime == min {
			tied = append(tied, d)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}

	var nonRepeat []*job.Job
	for _, t := range tied {
		if t.ID != s.lastJobID {
			nonRepeat = append(nonRepeat, t)
		}
	}
	if len(nonRepeat) > 0 && len(nonRepeat) < len(tied) {
		// A repeat-ID candidate exists among the tied set and there is at
		// least one alternative: anti-starvation prefers the alternative.
		return fifoOf(nonRepeat)
	}
	return fifoOf(tied)
}

// fifoOf returns the earliest-enqueued job among candidates. Job IDs are
// assigned in strictly increasing enqueue order, so the smallest ID wins.
func fifoOf(candidates []*job.Job) *job.Job {
	winner := candidates[0]
	for _, c := range candidates[1:] {
		if c.ID < winner.ID {
			winner = c
		}
	}
	return winner
}

// removeLocked detaches j from the ready queue by identity. Callers must
// hold s.mu.
func (s *Scheduler) removeLocked(j *job.Job) {
	for i, c := range s.ready {
		if c == j {
			s.ready = append(s.ready[:i], s.ready[i+1:]...)
			return
		}
	}
}
