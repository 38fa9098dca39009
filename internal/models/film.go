package models

import (
	"fmt"
	"time"
)

const MaxFilmNameLength = 128

// Film represents a catalog entry shared across all users.
type Film struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// Validate checks that the name is present and fits the catalog column.
func (f Film) Validate() error {
	return ValidateFilmName(f.Name)
}

// ValidateFilmName rejects empty names and names longer than [MaxFilmNameLength] runes.
func ValidateFilmName(name string) error {
	if name == "" {
		return fmt.Errorf("film name is required")
	}
	if n := len([]rune(name)); n > MaxFilmNameLength {
		return fmt.Errorf("film name must be at most %d characters, got %d", MaxFilmNameLength, n)
	}
	return nil
}

// Entry is a [Membership] joined with its [Film], as rendered in a user's list.
//
// Photo is the entry's own photo when set, otherwise the film's.
type Entry struct {
	ID     int64  `json:"id"`
	FilmID int64  `json:"film_id"`
	Name   string `json:"name"`
	Photo  string `json:"photo,omitempty"`
	Order  int    `json:"order"`
}
