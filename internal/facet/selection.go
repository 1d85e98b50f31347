// Package facet holds the three facet selections (ingredients, appliances,
// utensils) and derives the values each dropdown can still offer.
package facet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

type entry struct {
	dim   domain.Dimension
	value string
}

// Selection is the set of active facet values per dimension plus the most
// recently toggled value. Every stored value is lower-cased and unique
// within its dimension. Selection is not safe for concurrent use; the
// session controller owns it.
type Selection struct {
	sets  [len(domain.Dimensions)][]string
	order []entry // insertion order across all dimensions
	last  string
	has   bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func checkDimension(d domain.Dimension) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDimension, d)
	}
	return nil
}

// Toggle adds value to the dimension's set when absent and removes it when
// present. It reports whether the value is selected afterwards.
//
// Adding makes value the last toggled value. Removing hands that role to
// the most recently added value still selected in the same dimension,
// falling back to the most recent one of any dimension, or to none when
// nothing is selected anymore.
func (s *Selection) Toggle(d domain.Dimension, value string) (bool, error) {
	if err := checkDimension(d); err != nil {
		return false, err
	}
	v := normalize(value)

	if i := slices.Index(s.sets[d], v); i >= 0 {
		s.sets[d] = slices.Delete(s.sets[d], i, i+1)
		s.order = slices.DeleteFunc(s.order, func(e entry) bool { return e.dim == d && e.value == v })
		s.last, s.has = s.mostRecent(d)
		return false, nil
	}

	s.sets[d] = append(s.sets[d], v)
	s.order = append(s.order, entry{dim: d, value: v})
	s.last, s.has = v, true
	return true, nil
}

func (s *Selection) mostRecent(d domain.Dimension) (string, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		if s.order[i].dim == d {
			return s.order[i].value, true
		}
	}
	if n := len(s.order); n > 0 {
		return s.order[n-1].value, true
	}
	return "", false
}

// IsSelected reports whether value is in the dimension's set.
func (s *Selection) IsSelected(d domain.Dimension, value string) (bool, error) {
	if err := checkDimension(d); err != nil {
		return false, err
	}
	return slices.Contains(s.sets[d], normalize(value)), nil
}

// Values returns a copy of the dimension's selected values in insertion
// order. An invalid dimension yields nil.
func (s *Selection) Values(d domain.Dimension) []string {
	if !d.Valid() {
		return nil
	}
	return slices.Clone(s.sets[d])
}

// LastToggled returns the most recently toggled value, if any.
func (s *Selection) LastToggled() (string, bool) {
	return s.last, s.has
}

// Len returns the number of selected values across all dimensions.
func (s *Selection) Len() int {
	return len(s.order)
}

// Empty reports whether no facet value is selected.
func (s *Selection) Empty() bool {
	return len(s.order) == 0
}

// Reset drops every selected value.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	c := &Selection{last: s.last, has: s.has, order: slices.Clone(s.order)}
	for i := range s.sets {
		c.sets[i] = slices.Clone(s.sets[i])
	}
	return c
}

// SameSets reports set equality with o in every dimension, ignoring order
// and the last toggled value.
func (s *Selection) SameSets(o *Selection) bool {
	for i := range s.sets {
		if len(s.sets[i]) != len(o.sets[i]) {
			return false
		}
		for _, v := range s.sets[i] {
			if !slices.Contains(o.sets[i], v) {
				return false
			}
		}
	}
	return true
}
