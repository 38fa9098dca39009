// package formatter provides functions to export a user's film list to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/films/internal/models"
)

// Format names accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// Export renders export in format.
func Export(export *models.ListExport, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown, "md":
		return ExportToMarkdown(export)
	case FormatText, "text":
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, ValidateFormat(format)
	}
}

// ValidateFormat reports an error when [Export] does not accept format.
func ValidateFormat(format string) error {
	switch format {
	case FormatCSV, FormatMarkdown, "md", FormatText, "text", FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want one of %v)", format, Formats)
	}
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	switch format {
	case FormatMarkdown, "md":
		return ".md"
	case FormatText, "text":
		return ".txt"
	default:
		return "." + format
	}
}

// ExportToCSV converts a ListExport to CSV format with columns: Order, Name, Photo
func ExportToCSV(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Order", "Name", "Photo"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range export.Entries {
		record := []string{
			strconv.Itoa(entry.Order),
			entry.Name,
			entry.Photo,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ListExport to Markdown, linking each entry's photo when it has one
func ExportToMarkdown(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Films of %s\n\n", export.Owner)
	fmt.Fprintf(&buf, "**Films**: %d\n", len(export.Entries))
	if !export.ExportedAt.IsZero() {
		fmt.Fprintf(&buf, "**Exported**: %s\n", export.ExportedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	buf.WriteString("\n## List\n\n")

	for _, entry := range export.Entries {
		fmt.Fprintf(&buf, "%d. %s", entry.Order, entry.Name)
		if entry.Photo != "" {
			fmt.Fprintf(&buf, " ![%s](%s)", entry.Name, entry.Photo)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ListExport to plain text format
func ExportToText(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Owner: %s\n", export.Owner)
	fmt.Fprintf(&buf, "Films: %d\n\n", len(export.Entries))

	for _, entry := range export.Entries {
		fmt.Fprintf(&buf, "%d. %s\n", entry.Order, entry.Name)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a ListExport to indented JSON
func ExportToJSON(export *models.ListExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Write renders export in format to w.
func Write(w io.Writer, export *models.ListExport, format string) error {
	data, err := Export(export, format)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteFile renders export in format to path, creating parent directories as needed.
//
// Defaults to {owner}_films{ext} when path is empty. Returns the path written.
func WriteFile(export *models.ListExport, format, path string) (string, error) {
	if path == "" {
		path = export.Owner + "_films" + Extension(format)
	}

	data, err := Export(export, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
