package internaldefs

import (
	goEntitle "github.com/MrEthical07/goEntitle"
)

// CounterDef binds one engine counter to its exported metric name.
type CounterDef struct {
	ID   goEntitle.MetricID
	Name string
	Help string
}

// HistogramDef binds one engine histogram to its exported metric name.
type HistogramDef struct {
	ID   goEntitle.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: goEntitle.MetricLoginSuccess, Name: "goentitle_login_success_total", Help: "Completed logins."},
	{ID: goEntitle.MetricLoginFailure, Name: "goentitle_login_failure_total", Help: "Logins rejected by the backend or transport."},
	{ID: goEntitle.MetricLoginValidation, Name: "goentitle_login_validation_total", Help: "Logins stopped by local validation."},
	{ID: goEntitle.MetricRegisterSuccess, Name: "goentitle_register_success_total", Help: "Completed registrations."},
	{ID: goEntitle.MetricRegisterDuplicate, Name: "goentitle_register_duplicate_total", Help: "Duplicate-account registration answers."},
	{ID: goEntitle.MetricRegisterFailure, Name: "goentitle_register_failure_total", Help: "Registrations rejected by the backend or transport."},
	{ID: goEntitle.MetricRegisterValidation, Name: "goentitle_register_validation_total", Help: "Registrations stopped by local validation."},
	{ID: goEntitle.MetricSyncSuccess, Name: "goentitle_sync_success_total", Help: "Entitlement fetches applied to the cache."},
	{ID: goEntitle.MetricSyncFailure, Name: "goentitle_sync_failure_total", Help: "Entitlement fetches that failed."},
	{ID: goEntitle.MetricSyncSuperseded, Name: "goentitle_sync_superseded_total", Help: "Fetch results discarded by the sequence guard."},
	{ID: goEntitle.MetricSyncSkipped, Name: "goentitle_sync_skipped_total", Help: "Poll ticks skipped for lack of a cached token."},
	{ID: goEntitle.MetricEntitlementGranted, Name: "goentitle_entitlement_granted_total", Help: "Premium transitions from false to true."},
	{ID: goEntitle.MetricEntitlementRevoked, Name: "goentitle_entitlement_revoked_total", Help: "Premium transitions from true to false."},
	{ID: goEntitle.MetricUpgradeRequested, Name: "goentitle_upgrade_requested_total", Help: "Accepted payment-review requests."},
	{ID: goEntitle.MetricUpgradeFailed, Name: "goentitle_upgrade_failed_total", Help: "Rejected or failed payment-review requests."},
	{ID: goEntitle.MetricNoticeShown, Name: "goentitle_notice_shown_total", Help: "Notices started from an idle timeline."},
	{ID: goEntitle.MetricNoticeReplaced, Name: "goentitle_notice_replaced_total", Help: "Notices that restarted an active timeline."},
	{ID: goEntitle.MetricStorageError, Name: "goentitle_storage_error_total", Help: "Persistent-store failures."},
	{ID: goEntitle.MetricHydrate, Name: "goentitle_hydrate_total", Help: "Session hydration passes."},
	{ID: goEntitle.MetricLogout, Name: "goentitle_logout_total", Help: "Logout operations."},
}

// HistogramDefs lists every exported histogram in a stable order.
var HistogramDefs = []HistogramDef{
	{ID: goEntitle.MetricSyncLatency, Name: "goentitle_sync_latency_seconds", Help: "Entitlement fetch latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, matching the
// engine's fixed latency buckets.
var HistogramBounds = []string{
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"2.5",
	"5",
	"+Inf",
}

// HistogramBoundSuffix carries the bounds in metric-name-safe form.
var HistogramBoundSuffix = []string{
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exporters expose.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
