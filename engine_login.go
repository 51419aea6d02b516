package goEntitle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/goEntitle/api"
	"go.uber.org/zap"
)

// Login authenticates against the backend and persists the session.
//
// Local validation failures never reach the network. Backend sentinels map
// to typed errors and localized notices. On success the token, connexion
// flag, and reported premium value are persisted BEFORE the result route is
// computed: the write is the thing that changes the route, so the gate
// must not run ahead of it.
func (e *Engine) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if e == nil {
		return LoginResult{}, ErrEngineNotReady
	}

	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		e.metrics.Inc(MetricLoginValidation)
		e.notice.Trigger(MsgFillAllFields)
		return LoginResult{}, ErrFieldsRequired
	}

	res, err := e.client.Login(ctx, email, password)
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		switch {
		case errors.Is(err, api.ErrInvalidCredentials):
			e.notice.Trigger(MsgInvalidPassword)
			return LoginResult{}, ErrInvalidCredentials
		case errors.Is(err, api.ErrUserNotFound):
			e.notice.Trigger(MsgUserNotFound)
			return LoginResult{}, ErrUserNotFound
		}
		e.logger.Warn("login request failed", zap.Error(err))
		e.notice.Trigger(MsgLoginFailed)
		return LoginResult{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if err := e.store.SaveLogin(ctx, res.Token, res.Premium); err != nil {
		e.metrics.Inc(MetricStorageError)
		e.notice.Trigger(MsgLoginFailed)
		return LoginResult{}, wrapStorageErr(err)
	}

	e.mu.Lock()
	e.state.Connected = true
	e.state.Token = res.Token
	e.state.Premium = res.Premium
	route := gate(e.state)
	e.mu.Unlock()

	e.metrics.Inc(MetricLoginSuccess)
	return LoginResult{Premium: res.Premium, Route: route}, nil
}
