package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchLists Phase = iota
	ExportList
)

func (p Phase) String() string {
	switch p {
	case FetchLists:
		return "fetch_lists"
	case ExportList:
		return "export_list"
	default:
		return ""
	}
}

func fetchingListsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %d lists...", total),
	}
}

func exportingListUpdate(step, total int, owner string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, owner),
	}
}

func exportCompletedUpdate(step, total int, owner string, entries int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d films)", step, total, owner, entries),
	}
}

func exportFailedUpdate(step, total int, owner string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, owner, err),
	}
}
