package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/films/internal/formatter"
	"github.com/desertthunder/films/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk list exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: films_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 4)
	RateLimit  float64 // List reads per second (default: 20)
}

// manifestEntry is the JSON form of a [ListExportResult].
type manifestEntry struct {
	Owner   string `json:"owner"`
	Entries int    `json:"entries"`
	Photos  int    `json:"photos"`
	File    string `json:"file,omitempty"`
	Error   string `json:"error,omitempty"`
}

type manifest struct {
	Format     string          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Lists      []manifestEntry `json:"lists"`
}

// BulkExport exports the lists of owners concurrently and writes a manifest summarizing the results.
//
// Lists are read in order under a rate limit and written by a pool of workers. A failure for one
// owner is recorded in its result and does not stop the others. Results are sorted by owner.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	owners []Owner,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: list source not initialized", shared.ErrInvalidArgument)
	}
	if err := formatter.ValidateFormat(opts.Format); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("films_export_%d", e.now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalLists:      len(owners),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ListExportResult, 0, len(owners)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ListExportJob, len(owners))
	results := make(chan ListExportResult, len(owners))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)

		e.sendProgress(prog, fetchingListsUpdate(0, len(owners)))
		for i, owner := range owners {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			export, err := e.Snapshot(ctx, owner)
			if err != nil {
				results <- ListExportResult{Owner: owner.Username, Error: err}
				continue
			}

			jobs <- ListExportJob{Owner: owner, Export: export}
			e.sendProgress(prog, exportingListUpdate(i+1, len(owners), owner.Username))
		}
	}()

	// The producer is counted in wg so results closes only after its last send.
	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(owners), res.Owner, res.Entries))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(owners), res.Owner, res.Error))
			e.logger.Warn("list export failed", "owner", res.Owner, "error", res.Error)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].Owner < result.Results[j].Owner
	})

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := e.writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("bulk export finished", "lists", result.TotalLists, "failed", result.FailedExports, "dir", opts.OutputDir)
	return result, nil
}

// exportWorker writes lists from the jobs channel until it is closed.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ListExportJob,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleList(job, opts)
	}
}

// exportSingleList writes one list to {owner}_films{ext} under the output directory.
func (e *Exporter) exportSingleList(j ListExportJob, opts BulkExportOpts) ListExportResult {
	result := ListExportResult{
		Owner:   j.Owner.Username,
		Entries: len(j.Export.Entries),
		Photos:  j.Export.Photos(),
	}

	path := filepath.Join(opts.OutputDir, j.Owner.Username+"_films"+formatter.Extension(opts.Format))
	written, err := formatter.WriteFile(j.Export, opts.Format, path)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	result.File = written
	result.Success = true
	return result
}

func (e *Exporter) writeManifest(result *BulkExportResult, format, path string) error {
	m := manifest{
		Format:     format,
		ExportedAt: e.now(),
		Total:      result.TotalLists,
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
		Lists:      make([]manifestEntry, len(result.Results)),
	}

	for i, res := range result.Results {
		entry := manifestEntry{Owner: res.Owner, Entries: res.Entries, Photos: res.Photos, File: res.File}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Lists[i] = entry
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}
