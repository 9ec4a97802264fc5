package models

import (
	"time"
)

// Signup links one camper to one activity at a given hour of the day
type Signup struct {
	ID         int64     `json:"id" db:"id"`
	CamperID   int64     `json:"camper_id" db:"camper_id"`
	ActivityID int64     `json:"activity_id" db:"activity_id"`
	Time       int       `json:"time" db:"time"`
	CreatedAt  time.Time `json:"-" db:"created_at"`

	Camper   *Camper   `json:"camper,omitempty" db:"-"`
	Activity *Activity `json:"activity,omitempty" db:"-"`
}

// signupDefaultRules stops the owners from listing their signups again
var signupDefaultRules = []string{"-camper.signups", "-activity.signups"}

// NewSignup creates a new signup
func NewSignup(camperID, activityID int64, hour int) *Signup {
	return &Signup{
		CamperID:   camperID,
		ActivityID: activityID,
		Time:       hour,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate validates the signup data
func (s *Signup) Validate() error {
	var errs ValidationErrors
	errs = collect(errs, ValidatePositiveID(s.CamperID, "camper_id"))
	errs = collect(errs, ValidatePositiveID(s.ActivityID, "activity_id"))
	errs = collect(errs, ValidateIntRange(s.Time, "time", MinSignupTime, MaxSignupTime))
	return errs.orNil()
}

// ToMap serializes the signup together with its owners
func (s *Signup) ToMap(rules ...string) map[string]interface{} {
	return s.serialize(parseRules(signupDefaultRules, rules))
}

func (s *Signup) serialize(rs ruleSet) map[string]interface{} {
	out := map[string]interface{}{}
	rs.put(out, "id", s.ID)
	rs.put(out, "camper_id", s.CamperID)
	rs.put(out, "activity_id", s.ActivityID)
	rs.put(out, "time", s.Time)

	if s.Camper != nil && !rs.excludes("camper") {
		out["camper"] = s.Camper.serialize(rs.child("camper").with(camperDefaultRules))
	}
	if s.Activity != nil && !rs.excludes("activity") {
		out["activity"] = s.Activity.serialize(rs.child("activity").with(activityDefaultRules))
	}

	return out
}
