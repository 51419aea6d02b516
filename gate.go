package goEntitle

// gate maps the session snapshot to the screen the shell should present.
// Pure function, no side effects; the cache invariant (token absent means
// premium false) is enforced upstream, so an unauthenticated state can
// never reach RouteChat here.
func gate(state SessionState) Route {
	switch {
	case !state.Hydrated:
		return RouteLoading
	case !state.Onboarded:
		return RouteOnboarding
	case !state.Connected:
		return RouteForum
	case !state.Premium:
		return RoutePayment
	}
	return RouteChat
}

// Route evaluates the navigation gate over the current session state.
func (e *Engine) Route() Route {
	if e == nil {
		return RouteLoading
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return gate(e.state)
}
