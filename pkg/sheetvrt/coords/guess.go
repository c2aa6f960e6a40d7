// Package coords picks likely coordinate columns from field names.
package coords

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
)

// Candidate is an (x, y) pair of name fragments tried in order.
type Candidate struct {
	X, Y string
}

// DefaultCandidates is the fixed priority order.
var DefaultCandidates = []Candidate{
	{X: "longitude", Y: "latitude"},
	{X: "lon", Y: "lat"},
	{X: "x", Y: "y"},
}

// Guess fills the unset axes of preset from fields. An axis that is already
// set is never changed.
func Guess(fields []string, preset models.CoordinateBinding) models.CoordinateBinding {
	return GuessWith(fields, preset, DefaultCandidates)
}

// GuessWith is Guess with an explicit candidate list.
func GuessWith(fields []string, preset models.CoordinateBinding, candidates []Candidate) models.CoordinateBinding {
	b := preset
	if b.Complete() {
		return b
	}

	fold := cases.Fold()
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = fold.String(f)
	}

	for _, c := range candidates {
		if b.X == "" {
			b.X = firstContaining(fields, folded, fold.String(c.X))
		}
		if b.Y == "" {
			b.Y = firstContaining(fields, folded, fold.String(c.Y))
		}
	}

	return b
}

func firstContaining(fields, folded []string, token string) string {
	for i, f := range folded {
		if strings.Contains(f, token) {
			return fields[i]
		}
	}
	return ""
}
