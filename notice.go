package goEntitle

import (
	"sync"
	"time"
)

type noticePhase uint8

const (
	noticeIdle noticePhase = iota
	noticeAppearing
	noticeHolding
	noticeDismissing
)

// noticeTimeline is the transient notification state machine: Appearing,
// Holding, Dismissing, back to Idle, on a fixed schedule. One notice is
// visible at a time; a trigger while active restarts the timeline with the
// new message. The generation counter invalidates pending phase timers, so
// an overlapping trigger can never be advanced by a stale callback.
//
// Observable contract: only Active (message text + visibility) and the
// derived Progress fraction. Phases are internal.
type noticeTimeline struct {
	mu        sync.Mutex
	cfg       NoticeConfig
	metrics   *Metrics
	phase     noticePhase
	message   string
	startedAt time.Time
	gen       uint64
	timer     *time.Timer
}

func newNoticeTimeline(cfg NoticeConfig, metrics *Metrics) *noticeTimeline {
	return &noticeTimeline{
		cfg:     cfg,
		metrics: metrics,
	}
}

// Trigger shows message, restarting the timeline whatever its phase.
func (n *noticeTimeline) Trigger(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	n.stopTimerLocked()

	if n.phase == noticeIdle {
		n.metrics.Inc(MetricNoticeShown)
	} else {
		n.metrics.Inc(MetricNoticeReplaced)
	}

	n.phase = noticeAppearing
	n.message = message
	n.startedAt = time.Now()
	n.timer = time.AfterFunc(n.cfg.AppearDuration, func() {
		n.advance(gen, noticeHolding)
	})
}

// advance moves to the next phase unless a newer trigger or Close
// superseded the scheduling generation.
func (n *noticeTimeline) advance(gen uint64, to noticePhase) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen {
		return
	}

	n.phase = to
	switch to {
	case noticeHolding:
		n.timer = time.AfterFunc(n.cfg.HoldDuration, func() {
			n.advance(gen, noticeDismissing)
		})
	case noticeDismissing:
		n.timer = time.AfterFunc(n.cfg.DismissDuration, func() {
			n.advance(gen, noticeIdle)
		})
	case noticeIdle:
		n.message = ""
		n.timer = nil
	}
}

// Active reports the current message and whether anything is showing. A
// dismissing notice still counts as showing (it is fading, not gone).
func (n *noticeTimeline) Active() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message, n.phase != noticeIdle
}

// Progress is the companion linear indicator: elapsed fraction of the
// Appearing+Holding window, clamped to [0,1]. Zero when idle. Derived from
// the timeline clock, never a separate source of truth.
func (n *noticeTimeline) Progress() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.phase == noticeIdle {
		return 0
	}
	window := n.cfg.AppearDuration + n.cfg.HoldDuration
	if window <= 0 {
		return 1
	}
	p := float64(time.Since(n.startedAt)) / float64(window)
	if p > 1 {
		return 1
	}
	return p
}

// Close cancels any pending phase timer and clears the notice.
func (n *noticeTimeline) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	n.stopTimerLocked()
	n.phase = noticeIdle
	n.message = ""
}

func (n *noticeTimeline) stopTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
