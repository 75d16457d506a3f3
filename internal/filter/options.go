package filter

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/planbrowser/internal/plan"
)

// Selector values offered before any data is consulted.
var (
	KnownCarriers = []string{"Aetna", "Humana", "BCBS", "HAP", "Priority", "UHC", "WellCare"}
	KnownTypes    = []string{"PPO", "HMO-POS", "R-PPO"}
)

// Options lists the values each selector can take, All first.
type Options struct {
	Carriers []string
	Types    []string
	Features []string
}

// BuildOptions returns the selector values for plans: All, the known values,
// then any other values found in the data in first-seen order.
func BuildOptions(plans []plan.Plan) Options {
	carriers := seed(KnownCarriers)
	types := seed(KnownTypes)
	for _, p := range plans {
		if p.Carrier != "" {
			carriers.Set(p.Carrier, struct{}{})
		}
		if p.Type != "" {
			types.Set(p.Type, struct{}{})
		}
	}

	return Options{
		Carriers: carriers.Keys(),
		Types:    types.Keys(),
		Features: append([]string{All}, Features()...),
	}
}

func seed(known []string) *orderedmap.OrderedMap[string, struct{}] {
	m := orderedmap.NewOrderedMap[string, struct{}]()
	m.Set(All, struct{}{})
	for _, v := range known {
		m.Set(v, struct{}{})
	}
	return m
}
