package services

import (
	"camp-signup-api/internal/repositories"
)

// invalid classifies err as a validation failure for entity
func invalid(entity string, err error) error {
	return repositories.ValidationError(entity, 0, err)
}

// classify turns store constraint violations into validation failures and
// leaves every other error untouched
func classify(entity string, err error) error {
	if repositories.IsConstraint(err) {
		return invalid(entity, err)
	}
	return err
}
