// package models defines the data model for the film list service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the film list service.
// Implementations include User and Membership.
type Model interface {
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

var (
	_ Model = (*User)(nil)
	_ Model = (*Membership)(nil)
)

// Page selects a window of a user's list. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}
