// Package overlay draws the interaction layer that sits above a chart's
// plotted ink: the selection marquee and the hover cross-hair.
package overlay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is delivered when a requested frame is due.
type FrameMsg struct {
	Owner string
	Seq   int
}

// Scheduler holds at most one pending frame for its owner. Requests made
// while a frame is pending are folded into it.
type Scheduler struct {
	owner    string
	interval time.Duration
	seq      int
	pending  bool
	frames   int
}

func NewScheduler(owner string, interval time.Duration) *Scheduler {
	return &Scheduler{owner: owner, interval: interval}
}

// Request returns a tick command for the next frame, or nil if a frame is
// already pending.
func (s *Scheduler) Request() tea.Cmd {
	if s.pending {
		return nil
	}
	s.pending = true
	s.seq++
	owner, seq := s.owner, s.seq
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return FrameMsg{Owner: owner, Seq: seq}
	})
}

// Accept consumes msg if it is the pending frame for this owner.
func (s *Scheduler) Accept(msg FrameMsg) bool {
	if !s.pending || msg.Owner != s.owner || msg.Seq != s.seq {
		return false
	}
	s.pending = false
	s.frames++
	return true
}

// Cancel forgets the pending frame; its tick is ignored when it arrives.
func (s *Scheduler) Cancel() {
	s.pending = false
	s.seq++
}

func (s *Scheduler) Pending() bool { return s.pending }

// Frames counts the frames accepted so far.
func (s *Scheduler) Frames() int { return s.frames }
