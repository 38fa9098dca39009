package models

import (
	"fmt"
	"time"
)

// Membership is a single entry in a user's ordered film list.
type Membership struct {
	id        int64
	userID    string
	filmID    int64
	order     int
	photo     string
	createdAt time.Time
	updatedAt time.Time
}

// NewMembership creates a Membership for userID and filmID at the given order.
func NewMembership(userID string, filmID int64, order int) *Membership {
	now := time.Now().UTC()
	return &Membership{
		userID:    userID,
		filmID:    filmID,
		order:     order,
		createdAt: now,
		updatedAt: now,
	}
}

func (m *Membership) ID() int64            { return m.id }
func (m *Membership) UserID() string       { return m.userID }
func (m *Membership) FilmID() int64        { return m.filmID }
func (m *Membership) Order() int           { return m.order }
func (m *Membership) Photo() string        { return m.photo }
func (m *Membership) CreatedAt() time.Time { return m.createdAt }
func (m *Membership) UpdatedAt() time.Time { return m.updatedAt }

func (m *Membership) SetID(id int64)           { m.id = id }
func (m *Membership) SetOrder(order int)       { m.order = order }
func (m *Membership) SetPhoto(photo string)    { m.photo = photo }
func (m *Membership) SetCreatedAt(t time.Time) { m.createdAt = t }
func (m *Membership) SetUpdatedAt(t time.Time) { m.updatedAt = t }

// Validate checks ownership fields and that the order is positive.
func (m *Membership) Validate() error {
	if m.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if m.filmID <= 0 {
		return fmt.Errorf("film ID is required")
	}
	if m.order < 1 {
		return fmt.Errorf("order must be positive, got %d", m.order)
	}
	return nil
}
