package window

import "fmt"

// UnsupportedDriverError is returned for a driver with no policy entry and no
// explicit override.
type UnsupportedDriverError struct {
	Driver string
}

func (e *UnsupportedDriverError) Error() string {
	return fmt.Sprintf("driver %s not supported", e.Driver)
}

// UnsupportedConfigValueError is returned for an unrecognized header override.
type UnsupportedConfigValueError struct {
	Key   string
	Value string
}

func (e *UnsupportedConfigValueError) Error() string {
	return fmt.Sprintf("%s value %q not recognized", e.Key, e.Value)
}
