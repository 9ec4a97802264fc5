package models

import (
	"time"
)

// Activity represents something campers can sign up for
type Activity struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Difficulty int       `json:"difficulty" db:"difficulty"`
	CreatedAt  time.Time `json:"-" db:"created_at"`
	UpdatedAt  time.Time `json:"-" db:"updated_at"`

	Signups []*Signup `json:"signups,omitempty" db:"-"`
}

// activityDefaultRules leaves the relation out of the default representation
var activityDefaultRules = []string{"-signups"}

// NewActivity creates a new activity with timestamps set
func NewActivity(name string, difficulty int) *Activity {
	now := time.Now().UTC()
	return &Activity{
		Name:       SanitizeString(name),
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate validates the activity data
func (a *Activity) Validate() error {
	var errs ValidationErrors

	if err := ValidateRequired(a.Name, "name"); err != nil {
		errs = collect(errs, err)
	} else {
		errs = collect(errs, ValidateStringLength(a.Name, "name", 1, MaxNameLength))
	}

	return errs.orNil()
}

// ToMap serializes the activity with its default fields
func (a *Activity) ToMap(rules ...string) map[string]interface{} {
	return a.serialize(parseRules(activityDefaultRules, rules))
}

func (a *Activity) serialize(rs ruleSet) map[string]interface{} {
	out := map[string]interface{}{}
	rs.put(out, "id", a.ID)
	rs.put(out, "name", a.Name)
	rs.put(out, "difficulty", a.Difficulty)

	if !rs.excludes("signups") {
		child := rs.child("signups")
		signups := make([]map[string]interface{}, 0, len(a.Signups))
		for _, s := range a.Signups {
			signups = append(signups, s.serialize(child.with(signupDefaultRules)))
		}
		out["signups"] = signups
	}

	return out
}
