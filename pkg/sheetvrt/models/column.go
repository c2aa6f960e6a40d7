package models

import "strconv"

// ColumnDescriptor maps one source column to a descriptor field.
type ColumnDescriptor struct {
	// Name is the destination field name, unique within a descriptor.
	Name string `json:"name"`
	// Src is the field name reported by the source driver.
	Src string `json:"src"`
	// Type is the inferred field type.
	Type FieldType `json:"type"`
}

// PlaceholderName returns the positional name used for blank or duplicate
// headers. index is 0-based; the placeholder is 1-based.
func PlaceholderName(index int) string {
	return "Field" + strconv.Itoa(index+1)
}

// ColumnByName returns the column whose destination name is name.
func ColumnByName(columns []ColumnDescriptor, name string) (ColumnDescriptor, bool) {
	for _, c := range columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}

// ColumnNames returns destination names in declaration order.
func ColumnNames(columns []ColumnDescriptor) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}
