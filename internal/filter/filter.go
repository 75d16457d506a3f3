// Package filter narrows a plan list by category selectors and free-text search.
//
// Filtering is a pure, order-preserving pass. Criteria combine with logical
// AND and the All sentinel places no constraint on its selector.
package filter

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/planbrowser/internal/plan"
)

// All is the sentinel selector value meaning "no constraint".
const All = "All"

// Feature names accepted by Criteria.Feature.
const (
	FeatureRebate       = "Rebate"
	FeatureNoCommission = "No Commission"
)

// Predicate reports whether a plan has a derived feature.
type Predicate func(plan.Plan) bool

// features maps feature names to boolean field accessors. Adding a feature
// means adding an entry here.
var features = newFeatureTable()

func newFeatureTable() *orderedmap.OrderedMap[string, Predicate] {
	m := orderedmap.NewOrderedMap[string, Predicate]()
	m.Set(FeatureRebate, func(p plan.Plan) bool { return p.Rebate })
	m.Set(FeatureNoCommission, func(p plan.Plan) bool { return p.NoCommission })
	return m
}

// Criteria is the active combination of categorical selectors. An empty
// field is treated the same as All.
type Criteria struct {
	Carrier string
	Type    string
	Feature string
}

// IsZero reports whether no selector constrains the result.
func (c Criteria) IsZero() bool {
	return isAll(c.Carrier) && isAll(c.Type) && isAll(c.Feature)
}

func (c Criteria) String() string {
	return fmt.Sprintf("carrier=%s type=%s feature=%s", orAll(c.Carrier), orAll(c.Type), orAll(c.Feature))
}

// Filter returns the plans that satisfy every active selector and whose name
// or id contains search, ignoring case. The result preserves input order
// and is never nil.
func Filter(plans []plan.Plan, c Criteria, search string) []plan.Plan {
	matchFeature := featurePredicate(c.Feature)
	query := strings.ToLower(search)

	out := make([]plan.Plan, 0, len(plans))
	for _, p := range plans {
		if !matchCategory(c.Carrier, p.Carrier) {
			continue
		}
		if !matchCategory(c.Type, p.Type) {
			continue
		}
		if !matchFeature(p) {
			continue
		}
		if !matchSearch(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Features returns the known feature names in display order.
func Features() []string {
	return features.Keys()
}

// Summary formats the result counter shown above a listing.
func Summary(shown, total int) string {
	return fmt.Sprintf("Showing %d of %d Plans", shown, total)
}

func matchCategory(want, got string) bool {
	return isAll(want) || want == got
}

func matchSearch(p plan.Plan, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.ID), query)
}

// featurePredicate resolves a feature name. Unknown names match nothing.
func featurePredicate(name string) Predicate {
	if isAll(name) {
		return func(plan.Plan) bool { return true }
	}
	if pred, ok := features.Get(name); ok {
		return pred
	}
	return func(plan.Plan) bool { return false }
}

func isAll(v string) bool {
	return v == "" || v == All
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}
