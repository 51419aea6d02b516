package goEntitle

import (
	"context"
	"time"
)

// Logout destroys the session: the persistent keys are cleared atomically
// and the in-memory state resets whole, never partially. The onboarding
// marker clears too — the app has always done a full wipe on logout. Any
// in-flight entitlement fetch is invalidated so a late result cannot
// resurrect the old session.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	e.StopSync()

	if _, err := e.store.Clear(ctx); err != nil {
		e.metrics.Inc(MetricStorageError)
		return wrapStorageErr(err)
	}

	e.mu.Lock()
	installID := e.state.InstallID
	e.state = SessionState{Hydrated: true, InstallID: installID}
	e.reviewUntil = time.Time{}
	// Claim a fresh sequence and mark it applied: every fetch issued
	// before this point now fails the guard.
	e.fetchApplied = e.fetchIssued.Add(1)
	route := gate(e.state)
	e.mu.Unlock()

	e.metrics.Inc(MetricLogout)
	e.emit(ctx, Event{EventType: EventLoggedOut, Route: route.String()})
	return nil
}
