package goEntitle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/goEntitle/api"
	"go.uber.org/zap"
)

// RequestUpgrade submits the mobile-money number for manual payment review.
//
// Validation is a blocking concern at the UI layer ("fix your input now"),
// so [ErrPaymentNumberInvalid] comes back without a notice and without a
// network call. An accepted request opens the pending-review countdown; it
// NEVER sets premium — only an authoritative remote read does that.
func (e *Engine) RequestUpgrade(ctx context.Context, numero string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	numero = strings.TrimSpace(numero)
	if !validPaymentNumber(numero, e.config.Payment.MinNumberDigits) {
		return ErrPaymentNumberInvalid
	}

	token := e.token()
	if token == "" {
		return ErrNoToken
	}

	if err := e.client.RequestVIP(ctx, token, numero); err != nil {
		e.metrics.Inc(MetricUpgradeFailed)
		e.notice.Trigger(MsgUpgradeRequestFailed)
		if errors.Is(err, api.ErrRequestRejected) {
			return ErrUpgradeRejected
		}
		e.logger.Warn("upgrade request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	e.mu.Lock()
	e.reviewUntil = time.Now().Add(e.config.Payment.ReviewWindow)
	e.mu.Unlock()

	e.metrics.Inc(MetricUpgradeRequested)
	e.notice.Trigger(MsgUpgradeRequestSent)
	return nil
}

// ReviewRemaining reports the pending-review countdown: the remaining
// window (clamped at zero) and whether a review is pending at all. Render
// with [FormatClock].
func (e *Engine) ReviewRemaining() (time.Duration, bool) {
	if e == nil {
		return 0, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.reviewUntil.IsZero() {
		return 0, false
	}
	remaining := time.Until(e.reviewUntil)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// validPaymentNumber accepts digit groups (spaces tolerated) whose digit
// count meets the floor.
func validPaymentNumber(numero string, minDigits int) bool {
	digits := 0
	for _, r := range numero {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ':
		default:
			return false
		}
	}
	return digits >= minDigits
}
