// Package models defines data structures for spreadsheet layer descriptors.
package models

import "fmt"

// FieldType is the column type written to a descriptor field entry.
type FieldType int

const (
	// Integer columns hold whole numbers only.
	Integer FieldType = iota
	// Real columns hold floating-point numbers.
	Real
	// String is the fallback for anything else.
	String
)

var fieldTypeNames = [...]string{
	Integer: "Integer",
	Real:    "Real",
	String:  "String",
}

// String returns the descriptor spelling of the type.
func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

// ParseFieldType converts a descriptor type attribute back into a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	for i, name := range fieldTypeNames {
		if name == s {
			return FieldType(i), nil
		}
	}
	return String, fmt.Errorf("unknown field type %q", s)
}
