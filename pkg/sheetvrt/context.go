package sheetvrt

import (
	"fmt"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
)

// BuilderContext is the user's current choice of inputs. Builds read it by
// value and never modify it.
type BuilderContext struct {
	// SourcePath is the spreadsheet file.
	SourcePath string
	// Sheet is the selected sheet.
	Sheet string
	// LayerName is the exposed layer name.
	LayerName string
	// LinesToIgnore is the number of leading rows to skip.
	LinesToIgnore int
	// Header takes destination names from the row above the data.
	Header bool
	// Geometry requests point geometry.
	Geometry bool
	// Coordinates are the user's x/y choice; unset axes are guessed.
	Coordinates models.CoordinateBinding
	// CRS is the spatial reference text.
	CRS string
}

// Outcome is the result of one validation rule. Err is nil on success.
type Outcome struct {
	Rule string
	Err  error
}

type rule struct {
	name  string
	check func(in validationInput) error
}

type validationInput struct {
	ctx      BuilderContext
	hasSrc   bool
	geometry bool
	coords   models.CoordinateBinding
	columns  []models.ColumnDescriptor
}

var finalRules = []rule{
	{"source", func(in validationInput) error {
		if !in.hasSrc || in.ctx.SourcePath == "" {
			return ErrNoSource
		}
		return nil
	}},
	{"sheet", func(in validationInput) error {
		if in.ctx.Sheet == "" {
			return ErrNoSheet
		}
		return nil
	}},
	{"x", func(in validationInput) error {
		if !in.geometry {
			return nil
		}
		return checkAxis(in, in.coords.X, ErrNoXField)
	}},
	{"y", func(in validationInput) error {
		if !in.geometry {
			return nil
		}
		return checkAxis(in, in.coords.Y, ErrNoYField)
	}},
}

func checkAxis(in validationInput, name string, unset error) error {
	if name == "" {
		return unset
	}
	if in.columns != nil {
		if _, ok := models.ColumnByName(in.columns, name); !ok {
			return fmt.Errorf("%w: no field named %q", unset, name)
		}
	}
	return nil
}

func runRules(rules []rule, in validationInput) []Outcome {
	out := make([]Outcome, len(rules))
	for i, r := range rules {
		out[i] = Outcome{Rule: r.name, Err: r.check(in)}
	}
	return out
}

// aggregate turns failed outcomes into a ValidationError.
func aggregate(outcomes []Outcome) error {
	var problems []error
	for _, o := range outcomes {
		if o.Err != nil {
			problems = append(problems, o.Err)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems, Outcomes: outcomes}
}
