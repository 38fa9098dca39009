// package tasks implements long-running operations over many users' lists.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/shared"
)

// ListSource reads a user's ordered entries. [lists.Service] satisfies it.
type ListSource interface {
	List(ctx context.Context, userID string, page models.Page) ([]models.Entry, error)
}

// Owner identifies the user whose list is exported.
type Owner struct {
	ID       string
	Username string
}

// ListExportJob is a fetched list waiting to be written by a worker.
type ListExportJob struct {
	Owner  Owner
	Export *models.ListExport
}

// ListExportResult is the outcome of exporting one user's list.
type ListExportResult struct {
	Owner   string // Username of the list owner
	Entries int    // Entries written
	Photos  int    // Entries with a photo reference
	File    string // Path written, empty on failure
	Success bool
	Error   error
}

// BulkExportResult summarizes a [Exporter.BulkExport] run.
type BulkExportResult struct {
	TotalLists        int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ListExportResult
}

// Exporter snapshots users' lists and writes them with the formatter.
type Exporter struct {
	source ListSource
	logger *log.Logger
	now    func() time.Time
}

// NewExporter creates an Exporter reading from source. A nil logger falls back to [shared.NewLogger].
func NewExporter(source ListSource, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{
		source: source,
		logger: shared.WithLogger(logger, "component", "export"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot reads owner's full list into a [models.ListExport].
func (e *Exporter) Snapshot(ctx context.Context, owner Owner) (*models.ListExport, error) {
	entries, err := e.source.List(ctx, owner.ID, models.Page{})
	if err != nil {
		return nil, fmt.Errorf("failed to read list of %s: %w", owner.Username, err)
	}

	return &models.ListExport{
		Owner:      owner.Username,
		ExportedAt: e.now(),
		Entries:    entries,
	}, nil
}

// sendProgress sends a non-blocking progress update.
func (e *Exporter) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
