package goEntitle

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrFieldsRequired is the local validation error for blank form fields.
	// It is raised before any network call.
	ErrFieldsRequired = errors.New("all fields required")
	// ErrPasswordMismatch is the local validation error for a registration
	// whose confirmation does not match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPaymentNumberInvalid is the local validation error for a payment
	// number shorter than the configured minimum or containing non-digits.
	ErrPaymentNumberInvalid = errors.New("invalid payment number")
	// ErrInvalidCredentials mirrors the backend's invalid-credentials answer.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound mirrors the backend's user-not-found answer.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists mirrors the backend's user-already-exists answer.
	ErrUserExists = errors.New("user already exists")
	// ErrNoToken is returned by authenticated operations when no bearer
	// token is cached. Background sync treats this as a silent no-op.
	ErrNoToken = errors.New("no token")
	// ErrRemoteUnavailable covers transport failures, timeouts, and non-2xx
	// or malformed answers from the backend.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrUpgradeRejected is returned when the payment-request endpoint
	// answers success:false.
	ErrUpgradeRejected = errors.New("upgrade request rejected")
	// ErrStorageUnavailable covers persistent store failures. Hydration
	// never surfaces it; write paths do.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSyncSuperseded is returned by a foreground refresh whose result
	// was discarded because a newer fetch was issued before it completed.
	ErrSyncSuperseded = errors.New("refresh superseded by newer fetch")
	// ErrSyncRunning is returned by StartSync when the synchronizer is
	// already running.
	ErrSyncRunning = errors.New("synchronizer already running")
)

func wrapStorageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
