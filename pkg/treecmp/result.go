package treecmp

import (
	"math"
	"sort"
)

// Miscompare groups the descriptions of failed numeric leaves that share a
// relative-error magnitude.
type Miscompare struct {
	Magnitude    float64  `json:"magnitude"`
	Descriptions []string `json:"descriptions"`
}

// Incompatibility records a pair of values whose types cannot be compared.
type Incompatibility struct {
	Path      string `json:"path"`
	Expected  Kind   `json:"-"`
	UnderTest Kind   `json:"-"`
	Message   string `json:"message"`
}

// Result holds the accumulated outcome of a comparison.
type Result struct {
	outcomes          []bool
	miscompares       []Miscompare
	byMagnitude       map[float64]int
	nanGroup          int
	incompatibilities []Incompatibility
}

func newResult() *Result {
	return &Result{
		byMagnitude: make(map[float64]int),
		nanGroup:    -1,
	}
}

func (r *Result) record(ok bool) {
	r.outcomes = append(r.outcomes, ok)
}

func (r *Result) addMiscompare(magnitude float64, description string) {
	if math.IsNaN(magnitude) {
		if r.nanGroup < 0 {
			r.nanGroup = len(r.miscompares)
			r.miscompares = append(r.miscompares, Miscompare{Magnitude: magnitude})
		}
		g := &r.miscompares[r.nanGroup]
		g.Descriptions = append(g.Descriptions, description)
		return
	}
	idx, ok := r.byMagnitude[magnitude]
	if !ok {
		idx = len(r.miscompares)
		r.byMagnitude[magnitude] = idx
		r.miscompares = append(r.miscompares, Miscompare{Magnitude: magnitude})
	}
	g := &r.miscompares[idx]
	g.Descriptions = append(g.Descriptions, description)
}

// Match reports whether every leaf comparison passed and no incompatible
// types were found. An empty comparison matches. Unlike a plain AND over
// Outcomes, a run whose only problem is an incompatibility does not match,
// since incompatibilities record no outcome.
func (r *Result) Match() bool {
	if len(r.incompatibilities) > 0 {
		return false
	}
	for _, ok := range r.outcomes {
		if !ok {
			return false
		}
	}
	return true
}

// Outcomes returns one entry per leaf comparison, in traversal order.
func (r *Result) Outcomes() []bool {
	return append([]bool(nil), r.outcomes...)
}

// Total returns the number of leaf comparisons.
func (r *Result) Total() int {
	return len(r.outcomes)
}

// Passed returns the number of successful leaf comparisons.
func (r *Result) Passed() int {
	n := 0
	for _, ok := range r.outcomes {
		if ok {
			n++
		}
	}
	return n
}

// PassRate returns the fraction of leaf comparisons that passed.
// Returns ErrNoOutcomes if nothing was compared.
func (r *Result) PassRate() (float64, error) {
	if len(r.outcomes) == 0 {
		return 0, ErrNoOutcomes
	}
	return float64(r.Passed()) / float64(len(r.outcomes)), nil
}

// Miscompares returns the numeric miscompares ordered by magnitude, largest
// first. The NaN group (zero on one side) comes last.
func (r *Result) Miscompares() []Miscompare {
	out := make([]Miscompare, len(r.miscompares))
	for i, g := range r.miscompares {
		out[i] = Miscompare{
			Magnitude:    g.Magnitude,
			Descriptions: append([]string(nil), g.Descriptions...),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Magnitude, out[j].Magnitude
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})
	return out
}

// Incompatibilities returns every type incompatibility found, in traversal
// order.
func (r *Result) Incompatibilities() []Incompatibility {
	return append([]Incompatibility(nil), r.incompatibilities...)
}

func (r *Result) clone() *Result {
	c := newResult()
	c.outcomes = r.Outcomes()
	c.incompatibilities = r.Incompatibilities()
	c.nanGroup = r.nanGroup
	c.miscompares = make([]Miscompare, len(r.miscompares))
	for i, g := range r.miscompares {
		c.miscompares[i] = Miscompare{
			Magnitude:    g.Magnitude,
			Descriptions: append([]string(nil), g.Descriptions...),
		}
	}
	for k, v := range r.byMagnitude {
		c.byMagnitude[k] = v
	}
	return c
}
