// Package eligibility derives the welfare schemes a citizen qualifies for
// from their profile attributes.
package eligibility

import (
	"strings"

	dErrors "govportal/pkg/domain-errors"
)

// Scheme identifiers produced by Evaluate.
const (
	SchemePMKisan             = "pm-kisan"
	SchemeAyushmanBharat      = "ayushman-bharat"
	SchemePMScholarship       = "pm-scholarship"
	SchemeWidowPension        = "widow-pension"
	SchemeOldAgePension       = "old-age-pension"
	SchemeSCSTScholarship     = "sc-st-scholarship"
	SchemeMinorityScholarship = "minority-scholarship"
	SchemeDisabilityPension   = "disability-pension"
)

// IncomeCeiling is the annual income below which Ayushman Bharat applies.
const IncomeCeiling int64 = 500000

// Attributes are the profile facts the rules read. Age and Income are
// required; the flags default to false.
type Attributes struct {
	Age           *int
	Income        *int64
	Gender        string
	Category      string
	HasBPLCard    bool
	IsMinority    bool
	HasDisability bool
	IsStudent     bool
	IsFarmer      bool
}

// Validate rejects attributes the rules cannot be evaluated on.
func (a Attributes) Validate() error {
	if a.Age == nil {
		return dErrors.New(dErrors.CodeValidation, "age is required")
	}
	if a.Income == nil {
		return dErrors.New(dErrors.CodeValidation, "income is required")
	}
	if *a.Age < 0 {
		return dErrors.New(dErrors.CodeValidation, "age must not be negative")
	}
	if *a.Income < 0 {
		return dErrors.New(dErrors.CodeValidation, "income must not be negative")
	}
	return nil
}

// facts is Attributes after validation.
type facts struct {
	age    int
	income int64
	Attributes
}

type rule struct {
	scheme  string
	applies func(f facts) bool
}

// rules run in this order and every match is kept.
var rules = []rule{
	{SchemePMKisan, func(f facts) bool { return f.IsFarmer }},
	{SchemeAyushmanBharat, func(f facts) bool { return f.income < IncomeCeiling || f.HasBPLCard }},
	{SchemePMScholarship, func(f facts) bool { return f.IsStudent }},
	{SchemeWidowPension, func(f facts) bool { return strings.EqualFold(f.Gender, "female") && f.age > 40 }},
	{SchemeOldAgePension, func(f facts) bool { return f.age > 60 }},
	{SchemeSCSTScholarship, func(f facts) bool { return f.Category == "SC" || f.Category == "ST" }},
	{SchemeMinorityScholarship, func(f facts) bool { return f.IsMinority }},
	{SchemeDisabilityPension, func(f facts) bool { return f.HasDisability }},
}

// Evaluate returns the schemes a validated profile qualifies for, in rule
// order. The result is never nil.
func Evaluate(a Attributes) ([]string, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	f := facts{age: *a.Age, income: *a.Income, Attributes: a}
	schemes := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(f) {
			schemes = append(schemes, r.scheme)
		}
	}
	return schemes, nil
}

// Schemes lists every scheme the evaluator can produce, in rule order.
func Schemes() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.scheme
	}
	return out
}
