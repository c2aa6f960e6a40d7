// Package window resolves the row window (offset, limit) a descriptor
// selects from a source sheet.
package window

import (
	"fmt"
	"strings"
)

// HeaderMode is an explicit header handling override for a driver.
type HeaderMode string

const (
	// HeaderAuto uses the driver default.
	HeaderAuto HeaderMode = "AUTO"
	// HeaderForce makes the driver read the first row as field names.
	HeaderForce HeaderMode = "FORCE"
	// HeaderDisable makes the driver treat every row as data.
	HeaderDisable HeaderMode = "DISABLE"
)

// ParseHeaderMode normalizes a configuration value. An empty value means AUTO.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch m := HeaderMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case "", HeaderAuto:
		return HeaderAuto, nil
	case HeaderForce, HeaderDisable:
		return m, nil
	default:
		return "", &UnsupportedConfigValueError{Key: "headers", Value: s}
	}
}

// DriverPolicy describes how a source driver behaves.
type DriverPolicy struct {
	// NativeHeaders is the AUTO default: the driver itself reads the first
	// row as field names.
	NativeHeaders bool `yaml:"native_headers"`
	// UnreliableFeatureCount marks drivers whose feature count includes
	// trailing blank rows.
	UnreliableFeatureCount bool `yaml:"unreliable_feature_count"`
}

// Policies maps driver identifiers to their behavior, plus optional header
// overrides per driver.
type Policies struct {
	Drivers   map[string]DriverPolicy
	Overrides map[string]HeaderMode
}

// DefaultPolicies returns the built-in driver table.
func DefaultPolicies() Policies {
	return Policies{
		Drivers: map[string]DriverPolicy{
			"ODS":  {NativeHeaders: true},
			"XLS":  {NativeHeaders: false, UnreliableFeatureCount: true},
			"XLSX": {NativeHeaders: false},
			"CSV":  {NativeHeaders: true},
		},
		Overrides: map[string]HeaderMode{},
	}
}

// Headers reports whether driverID reads the first row as field names,
// applying any override.
func (p Policies) Headers(driverID string) (bool, error) {
	mode, err := ParseHeaderMode(string(p.Overrides[driverID]))
	if err != nil {
		return false, fmt.Errorf("driver %s: %w", driverID, err)
	}

	switch mode {
	case HeaderForce:
		return true, nil
	case HeaderDisable:
		return false, nil
	}

	dp, ok := p.Drivers[driverID]
	if !ok {
		return false, &UnsupportedDriverError{Driver: driverID}
	}
	return dp.NativeHeaders, nil
}

// UnreliableCount reports whether driverID misreports its feature count.
// Unknown drivers are treated as reliable.
func (p Policies) UnreliableCount(driverID string) bool {
	return p.Drivers[driverID].UnreliableFeatureCount
}

// Resolver builds a Resolver for driverID from the user's settings.
func (p Policies) Resolver(driverID string, linesToIgnore int, header bool) (Resolver, error) {
	native, err := p.Headers(driverID)
	if err != nil {
		return Resolver{}, err
	}
	return Resolver{
		LinesToIgnore:   max(linesToIgnore, 0),
		Header:          header || native,
		NativeHeaders:   native,
		UnreliableCount: p.UnreliableCount(driverID),
	}, nil
}
