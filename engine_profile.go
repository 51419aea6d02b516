package goEntitle

import (
	"context"
	"fmt"
	"time"
)

// Profile fetches the authoritative user record for the profile screen.
// This is a foreground read: errors come back to the caller as recoverable.
// The entitlement it carries flows through the same sequence-guarded apply
// path as the synchronizer, so a profile visit can also settle the flag.
func (e *Engine) Profile(ctx context.Context) (UserProfile, error) {
	if e == nil {
		return UserProfile{}, ErrEngineNotReady
	}

	token := e.token()
	if token == "" {
		return UserProfile{}, ErrNoToken
	}

	seq := e.fetchIssued.Add(1)

	start := time.Now()
	profile, err := e.client.User(ctx, token)
	e.metrics.Observe(MetricSyncLatency, time.Since(start))

	if err != nil {
		e.metrics.Inc(MetricSyncFailure)
		return UserProfile{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	// A superseded apply is fine here: the profile text is still the
	// freshest answer the caller has.
	if e.applyEntitlement(ctx, seq, profile.Premium) {
		e.metrics.Inc(MetricSyncSuccess)
	}

	return UserProfile{Name: profile.Name, Premium: profile.Premium}, nil
}
