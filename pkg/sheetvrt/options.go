// Package sheetvrt builds OGR virtual layer descriptors for spreadsheet
// sheets, optionally with point geometry from two columns.
package sheetvrt

import (
	"log/slog"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/window"
)

// DefaultSampleRows is the preview row cap used when none is configured.
const DefaultSampleRows = 20

// Options configures a Builder.
type Options struct {
	// Policies is the driver table. A zero value uses window.DefaultPolicies.
	Policies window.Policies
	// SampleRows caps preview builds that do not pass their own cap.
	SampleRows int
	// SQLPointCompat allows geometry together with a query selection.
	SQLPointCompat bool
	// Notify receives warnings. A nil Notify logs through Logger.
	Notify Notifier
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns default builder options.
func DefaultOptions() Options {
	return Options{
		Policies:   window.DefaultPolicies(),
		SampleRows: DefaultSampleRows,
	}
}

func (o Options) withDefaults() Options {
	if o.Policies.Drivers == nil {
		o.Policies = window.DefaultPolicies()
	}
	if o.SampleRows <= 0 {
		o.SampleRows = DefaultSampleRows
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Notify == nil {
		o.Notify = LogNotifier(o.Logger)
	}
	return o
}
