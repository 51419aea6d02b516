package goEntitle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/goEntitle/api"
	"go.uber.org/zap"
)

// Register creates an account and persists the session.
//
// A duplicate-account answer persists nothing: the result carries the
// delayed redirect to the login screen (the notice stays readable for the
// configured delay) alongside [ErrUserExists]. On success the token is
// written under the canonical key — registration historically wrote a
// divergent userToken key that the entitlement reads never consulted.
func (e *Engine) Register(ctx context.Context, name, email, password, confirm string) (RegisterResult, error) {
	if e == nil {
		return RegisterResult{}, ErrEngineNotReady
	}

	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" ||
		strings.TrimSpace(password) == "" || strings.TrimSpace(confirm) == "" {
		e.metrics.Inc(MetricRegisterValidation)
		e.notice.Trigger(MsgFillAllFields)
		return RegisterResult{}, ErrFieldsRequired
	}
	if password != confirm {
		e.metrics.Inc(MetricRegisterValidation)
		e.notice.Trigger(MsgPasswordsDiffer)
		return RegisterResult{}, ErrPasswordMismatch
	}

	res, err := e.client.Register(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUserExists) {
			e.metrics.Inc(MetricRegisterDuplicate)
			e.notice.Trigger(MsgUserExists)
			return RegisterResult{
				Route:         RouteConnexion,
				RedirectDelay: e.config.Auth.DuplicateRedirectDelay,
			}, ErrUserExists
		}
		e.metrics.Inc(MetricRegisterFailure)
		e.logger.Warn("registration request failed", zap.Error(err))
		e.notice.Trigger(MsgRegistrationFailed)
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if err := e.store.SaveLogin(ctx, res.Token, res.Premium); err != nil {
		e.metrics.Inc(MetricStorageError)
		e.notice.Trigger(MsgRegistrationFailed)
		return RegisterResult{}, wrapStorageErr(err)
	}

	e.mu.Lock()
	e.state.Connected = true
	e.state.Token = res.Token
	e.state.Premium = res.Premium
	route := gate(e.state)
	e.mu.Unlock()

	e.metrics.Inc(MetricRegisterSuccess)
	return RegisterResult{Premium: res.Premium, Route: route}, nil
}
