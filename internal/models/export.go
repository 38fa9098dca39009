package models

import "time"

// ListExport is a snapshot of one user's list for the exporters.
type ListExport struct {
	Owner      string    `json:"owner"`
	ExportedAt time.Time `json:"exported_at"`
	Entries    []Entry   `json:"entries"`
}

// Photos returns the number of entries with a photo reference.
func (e ListExport) Photos() int {
	n := 0
	for _, entry := range e.Entries {
		if entry.Photo != "" {
			n++
		}
	}
	return n
}
