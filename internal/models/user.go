package models

import (
	"fmt"
	"regexp"
	"time"
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// User is an account that owns a personal film list.
type User struct {
	id           string
	sequence     int
	username     string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a User with creation timestamps set to now.
func NewUser(sequence int, username, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		sequence:     sequence,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Sequence() int        { return u.sequence }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetID(id string)             { u.id = id }
func (u *User) SetSequence(sequence int)    { u.sequence = sequence }
func (u *User) SetPasswordHash(hash string) { u.passwordHash = hash }
func (u *User) SetCreatedAt(t time.Time)    { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time)    { u.updatedAt = t }

// Validate checks the username format and that a password hash is present.
func (u *User) Validate() error {
	if err := ValidateUsername(u.username); err != nil {
		return err
	}
	if u.passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// ValidateUsername accepts 1-150 letters, digits and @/./+/-/_ characters.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits and @/./+/-/_")
	}
	return nil
}
