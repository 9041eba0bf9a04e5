// Package views evaluates views against field histories that
// have already been read from storage. Everything in here is pure computation.
package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
)

// History maps a field name to every entry of that field's log, in arrival order.
type History map[string][]types.Entry

// Evaluate filters the history of the view's field and applies its projection.
func Evaluate(history History, view types.View) (types.Value, error) {
	entries, ok := history[view.Field]
	if !ok {
		return types.Null(), errors.NewFieldNotFoundError(view.Field)
	}

	return Project(view.Projection, Filter(entries, view))
}

// Filter selects the patches that belong to the view's field and, if the view
// has a range, whose timestamps fall within it. Arrival order is preserved.
func Filter(entries []types.Entry, view types.View) []types.Patch {
	patches := make([]types.Patch, 0, len(entries))

	for _, e := range entries {
		if e.Patch.Field != view.Field {
			continue
		}
		if view.Range != nil && !view.Range.Contains(e.Timestamp) {
			continue
		}
		patches = append(patches, e.Patch)
	}

	return patches
}

// Project reduces patches to a single value.
func Project(projection types.Projection, patches []types.Patch) (types.Value, error) {
	switch projection.Kind {
	case types.Latest:
		return latest(patches), nil
	case types.Collect:
		return collect(patches), nil
	case types.Avg:
		return avg(patches)
	case types.Sum:
		return sum(patches)
	case types.Concat:
		return concat(patches, projection.Separator)
	case types.All:
		return all(patches)
	case types.Any:
		return anyOf(patches)
	case types.None:
		return none(patches)
	}

	return types.Null(), errors.NewBadRequestError(fmt.Sprintf("unknown projection %q", projection.Kind))
}

func latest(patches []types.Patch) types.Value {
	if len(patches) == 0 {
		return types.Null()
	}
	return patches[len(patches)-1].Value
}

func collect(patches []types.Patch) types.Value {
	values := make([]types.Value, len(patches))
	for i, p := range patches {
		values[i] = p.Value
	}
	return types.Array(values...)
}

func avg(patches []types.Patch) (types.Value, error) {
	nx, err := numerics(patches, "cannot average non-numeric value stream")
	if err != nil {
		return types.Null(), err
	}

	if len(nx) == 0 {
		return types.Null(), errors.NewTypeMismatchError("cannot average an empty stream")
	}

	count := float64(len(nx))
	mean := total(nx) / count

	if !finite(mean) {
		// the sum overflowed, so scale every value down before adding
		mean = 0.0
		for _, n := range nx {
			mean += n / count
		}
	}

	if !finite(mean) {
		return types.Null(), errors.NewTypeMismatchError(overflowReason)
	}

	return types.Number(mean), nil
}

func sum(patches []types.Patch) (types.Value, error) {
	nx, err := numerics(patches, "cannot sum non-numeric value stream")
	if err != nil {
		return types.Null(), err
	}

	t := total(nx)
	if !finite(t) {
		return types.Null(), errors.NewTypeMismatchError(overflowReason)
	}

	return types.Number(t), nil
}

const overflowReason string = "numeric value stream overflows"

func total(nx []float64) float64 {
	t := 0.0
	for _, n := range nx {
		t += n
	}
	return t
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func concat(patches []types.Patch, separator string) (types.Value, error) {
	sx, err := strs(patches, "cannot concat non-string value stream")
	if err != nil {
		return types.Null(), err
	}

	return types.String(strings.Join(sx, separator)), nil
}

func all(patches []types.Patch) (types.Value, error) {
	bx, err := bools(patches, "cannot apply conjunction to non-boolean value stream")
	if err != nil {
		return types.Null(), err
	}

	for _, b := range bx {
		if !b {
			return types.Boolean(false), nil
		}
	}
	return types.Boolean(true), nil
}

func anyOf(patches []types.Patch) (types.Value, error) {
	bx, err := bools(patches, "cannot apply disjunction to non-boolean value stream")
	if err != nil {
		return types.Null(), err
	}

	return types.Boolean(someTrue(bx)), nil
}

// none is the negation of any: true iff no value is true.
func none(patches []types.Patch) (types.Value, error) {
	bx, err := bools(patches, "cannot apply negated disjunction to non-boolean value stream")
	if err != nil {
		return types.Null(), err
	}

	return types.Boolean(!someTrue(bx)), nil
}

func someTrue(bx []bool) bool {
	for _, b := range bx {
		if b {
			return true
		}
	}
	return false
}

func numerics(patches []types.Patch, reason string) ([]float64, error) {
	return ofType(patches, types.Value.AsNumber, reason)
}

func strs(patches []types.Patch, reason string) ([]string, error) {
	return ofType(patches, types.Value.AsString, reason)
}

func bools(patches []types.Patch, reason string) ([]bool, error) {
	return ofType(patches, types.Value.AsBoolean, reason)
}

// ofType coerces every patch value with as. A typed aggregate is only defined
// when every value coerces, so a single miss fails the whole stream.
func ofType[R any](patches []types.Patch, as func(types.Value) (R, bool), reason string) ([]R, error) {
	rx := make([]R, 0, len(patches))

	for _, p := range patches {
		if r, ok := as(p.Value); ok {
			rx = append(rx, r)
		}
	}

	if len(rx) != len(patches) {
		return nil, errors.NewTypeMismatchError(reason)
	}

	return rx, nil
}
