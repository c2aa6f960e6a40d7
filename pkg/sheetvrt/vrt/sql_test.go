package vrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	assert.Equal(t, "SELECT * FROM Sheet1 LIMIT 10 OFFSET 2", Query("Sheet1", 10, 2))
	assert.Equal(t, `SELECT * FROM "Hoja 1" LIMIT 5 OFFSET 1`, Query("Hoja 1", 5, 1))
	assert.Equal(t, `SELECT * FROM "a""b" LIMIT 5 OFFSET 1`, Query(`a"b`, 5, 1))
}

func TestQueryQuotesKeywords(t *testing.T) {
	tests := map[string]string{
		"Order":   `SELECT * FROM "Order" LIMIT 5 OFFSET 2`,
		"From":    `SELECT * FROM "From" LIMIT 5 OFFSET 2`,
		"group":   `SELECT * FROM "group" LIMIT 5 OFFSET 2`,
		"LIMIT":   `SELECT * FROM "LIMIT" LIMIT 5 OFFSET 2`,
		"Orders":  `SELECT * FROM Orders LIMIT 5 OFFSET 2`,
		"Select1": `SELECT * FROM Select1 LIMIT 5 OFFSET 2`,
	}
	for sheet, want := range tests {
		assert.Equal(t, want, Query(sheet, 5, 2), sheet)
	}
}

func TestNewSelection(t *testing.T) {
	s := NewSelection("Sheet1", 0, 10)
	assert.False(t, s.IsQuery())
	assert.Equal(t, "Sheet1", s.Sheet)

	s = NewSelection("Sheet1", 3, 7)
	assert.True(t, s.IsQuery())
	assert.Equal(t, "SELECT * FROM Sheet1 LIMIT 7 OFFSET 3", s.Query)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []sqlToken
	}{
		{"SELECT * FROM Sheet1 LIMIT 10 OFFSET 2", []sqlToken{
			{text: "SELECT"}, {text: "*"}, {text: "FROM"}, {text: "Sheet1"},
			{text: "LIMIT"}, {text: "10"}, {text: "OFFSET"}, {text: "2"},
		}},
		{"  select\t*\nfrom  s ", []sqlToken{{text: "select"}, {text: "*"}, {text: "from"}, {text: "s"}}},
		{`FROM "Hoja 1" OFFSET 1`, []sqlToken{{text: "FROM"}, {text: "Hoja 1", quoted: true}, {text: "OFFSET"}, {text: "1"}}},
		{`FROM "a""b"`, []sqlToken{{text: "FROM"}, {text: `a"b`, quoted: true}}},
		{`FROM ""`, []sqlToken{{text: "FROM"}, {text: "", quoted: true}}},
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tokenize(tt.input), "tokenize(%q)", tt.input)
	}
}

func TestTokenKeyword(t *testing.T) {
	assert.True(t, sqlToken{text: "from"}.keyword("FROM"))
	assert.False(t, sqlToken{text: "From", quoted: true}.keyword("from"))
	assert.False(t, sqlToken{text: "Fromage"}.keyword("from"))
}
