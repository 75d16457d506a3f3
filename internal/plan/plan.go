// Package plan defines the insurance-plan record browsed by planbrowser.
package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalid is returned when a plan record fails validation.
var ErrInvalid = errors.New("invalid plan")

// MaxRating is the upper bound of the star rating scale.
const MaxRating = 5.0

// Plan is one catalog entry. Field names in the persisted document mirror
// the JSON keys below exactly.
type Plan struct {
	ID           string  `json:"id" yaml:"id"`
	Carrier      string  `json:"carrier" yaml:"carrier"`
	Logo         string  `json:"logo" yaml:"logo"`
	Name         string  `json:"name" yaml:"name"`
	Rating       float64 `json:"rating" yaml:"rating"`
	Premium      float64 `json:"premium" yaml:"premium"`
	Deductible   float64 `json:"deductible" yaml:"deductible"`
	Moops        float64 `json:"moops" yaml:"moops"`
	Type         string  `json:"type" yaml:"type"`
	DentalMax    float64 `json:"dentalMax" yaml:"dentalMax"`
	Vision       float64 `json:"vision" yaml:"vision"`
	Hearing      float64 `json:"hearing" yaml:"hearing"`
	Fitness      string  `json:"fitness" yaml:"fitness"`
	Rebate       bool    `json:"rebate" yaml:"rebate"`
	NoCommission bool    `json:"noCommission" yaml:"noCommission"`
}

// Validate checks the record for a usable id and sane numeric fields.
func (p Plan) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalid)
	}
	if p.Rating < 0 || p.Rating > MaxRating {
		return fmt.Errorf("%w: %s: rating must be between 0 and %.0f", ErrInvalid, p.ID, MaxRating)
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"premium", p.Premium},
		{"deductible", p.Deductible},
		{"moops", p.Moops},
		{"dentalMax", p.DentalMax},
		{"vision", p.Vision},
		{"hearing", p.Hearing},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return fmt.Errorf("%w: %s: %s must not be negative", ErrInvalid, p.ID, a.field)
		}
	}
	return nil
}

// NewID returns an identifier for a freshly added plan. Callers must still
// handle a collision reported by the store.
func NewID() string {
	return "new-" + uuid.NewString()
}

// Placeholder returns the template record the data log adds when no plan
// details are supplied.
func Placeholder(id string) Plan {
	return Plan{
		ID:         id,
		Carrier:    "New Carrier",
		Logo:       "/logos/default.png",
		Name:       "New Plan Name",
		Rating:     4.0,
		Premium:    100,
		Deductible: 500,
		Moops:      5000,
		Type:       "PPO",
		DentalMax:  1000,
		Vision:     200,
		Hearing:    500,
		Fitness:    "SilverSneakers",
	}
}

// Clone returns a copy of plans that shares no backing array with the input.
func Clone(plans []Plan) []Plan {
	if plans == nil {
		return nil
	}
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}
