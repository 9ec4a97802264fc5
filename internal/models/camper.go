package models

import (
	"time"
)

// Camper represents a participant of the camp
type Camper struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`

	// Signups is populated only by the repository calls that load relations
	Signups []*Signup `json:"signups,omitempty" db:"-"`
}

// camperDefaultRules keeps a camper's signups from pointing back at the camper
var camperDefaultRules = []string{"-signups.camper"}

// NewCamper creates a new camper with timestamps set
func NewCamper(name string, age int) *Camper {
	now := time.Now().UTC()
	return &Camper{
		Name:      SanitizeString(name),
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the camper data
func (c *Camper) Validate() error {
	var errs ValidationErrors

	if err := ValidateRequired(c.Name, "name"); err != nil {
		errs = collect(errs, err)
	} else {
		errs = collect(errs, ValidateStringLength(c.Name, "name", 1, MaxNameLength))
	}

	errs = collect(errs, ValidateIntRange(c.Age, "age", MinCamperAge, MaxCamperAge))

	return errs.orNil()
}

// Rename replaces the camper's name
func (c *Camper) Rename(name string) {
	c.Name = SanitizeString(name)
}

// UpdateTimestamp updates the UpdatedAt timestamp
func (c *Camper) UpdateTimestamp() {
	c.UpdatedAt = time.Now().UTC()
}

// ToMap serializes the camper, applying the default rules plus any exclusion
// rules given, e.g. ToMap("-signups") for list views
func (c *Camper) ToMap(rules ...string) map[string]interface{} {
	return c.serialize(parseRules(camperDefaultRules, rules))
}

func (c *Camper) serialize(rs ruleSet) map[string]interface{} {
	out := map[string]interface{}{}
	rs.put(out, "id", c.ID)
	rs.put(out, "name", c.Name)
	rs.put(out, "age", c.Age)

	if !rs.excludes("signups") {
		child := rs.child("signups")
		signups := make([]map[string]interface{}, 0, len(c.Signups))
		for _, s := range c.Signups {
			signups = append(signups, s.serialize(child.with(signupDefaultRules)))
		}
		out["signups"] = signups
	}

	return out
}
