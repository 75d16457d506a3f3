package plan

import (
	_ "embed"
	"fmt"
)

//go:embed data/plans.json
var defaultDocument []byte

// Defaults returns a fresh copy of the bundled dataset used to seed an empty
// medium.
func Defaults() []Plan {
	plans, err := Decode(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("bundled plan dataset is invalid: %v", err))
	}
	return plans
}
