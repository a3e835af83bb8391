// Package artifact persists normalized trend tables as CSV or spreadsheet
// files.
package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

// Format is an artifact file format.
type Format string

// Supported formats.
const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	dirPerm   = 0o750
	sheetName = "Sheet1"
)

var (
	// ErrWrite wraps every persistence failure.
	ErrWrite = errors.New("write artifact")
	// ErrUnknownFormat is returned for unsupported format names.
	ErrUnknownFormat = errors.New("unknown artifact format")
	// ErrNoTable is returned when asked to persist a nil table.
	ErrNoTable = errors.New("no table to write")
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, FormatCSV, FormatXLSX:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DefaultFormat returns the per-kind format used when the configured format
// is auto: trending lists and related tables are plain CSV, numeric
// interest tables are spreadsheets.
func DefaultFormat(kind trends.Kind) Format {
	switch kind {
	case trends.KindTrendingTopics, trends.KindRelatedQueries, trends.KindTopicBreakdown:
		return FormatCSV
	case trends.KindRegionalInterest, trends.KindTimeSeries, trends.KindPlatformInterest:
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Resolve picks the concrete format for a kind.
func (f Format) Resolve(kind trends.Kind) Format {
	if f == FormatAuto || f == "" {
		return DefaultFormat(kind)
	}

	return f
}

// Artifact describes a written file.
type Artifact struct {
	Name   string
	Path   string
	Format Format
	Size   int64
	Rows   int
}

// Writer writes tables into a directory.
type Writer struct {
	Dir    string
	Logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Writer{Dir: dir, Logger: logger}
}

// Write persists table as "{name}.{ext}". Errors are wrapped with ErrWrite.
func (w *Writer) Write(table *trends.Table, name string, format Format) (Artifact, error) {
	if table == nil {
		return Artifact{}, fmt.Errorf("%w: %s: %w", ErrWrite, name, ErrNoTable)
	}

	if format == FormatAuto || format == "" {
		format = FormatCSV
	}

	mkErr := os.MkdirAll(w.Dir, dirPerm)
	if mkErr != nil {
		return Artifact{}, fmt.Errorf("%w: create dir %s: %w", ErrWrite, w.Dir, mkErr)
	}

	path := filepath.Join(w.Dir, FileName(name, format))

	var err error

	switch format {
	case FormatCSV:
		err = writeCSV(path, table)
	case FormatXLSX:
		err = writeXLSX(path, table)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return Artifact{}, fmt.Errorf("%w: stat %s: %w", ErrWrite, path, statErr)
	}

	art := Artifact{
		Name:   name,
		Path:   path,
		Format: format,
		Size:   info.Size(),
		Rows:   table.Len(),
	}

	w.Logger.Info("artifact written",
		"path", art.Path,
		"rows", art.Rows,
		"size", humanize.Bytes(uint64(art.Size)), //nolint:gosec // file sizes are non-negative.
	)

	return art, nil
}

// FileName returns the sanitized "{name}.{ext}" file name.
func FileName(name string, format Format) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		default:
			return r
		}
	}, name)

	return clean + "." + string(format)
}

func header(table *trends.Table) []string {
	cols := make([]string, 0, len(table.Columns)+1)
	if table.Index != "" {
		cols = append(cols, table.Index)
	}

	return append(cols, table.Columns...)
}

func writeCSV(path string, table *trends.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close: %w", closeErr)
		}
	}()

	cw := csv.NewWriter(f)

	writeErr := cw.Write(header(table))
	if writeErr != nil {
		return fmt.Errorf("header: %w", writeErr)
	}

	for _, row := range table.Rows {
		record := make([]string, 0, len(table.Columns)+1)
		if table.Index != "" {
			record = append(record, row.Key)
		}

		for _, col := range table.Columns {
			record = append(record, FormatCell(row.Values[col]))
		}

		writeErr = cw.Write(record)
		if writeErr != nil {
			return fmt.Errorf("row %q: %w", row.Key, writeErr)
		}
	}

	cw.Flush()

	flushErr := cw.Error()
	if flushErr != nil {
		return fmt.Errorf("flush: %w", flushErr)
	}

	return nil
}

func writeXLSX(path string, table *trends.Table) (err error) {
	book := excelize.NewFile()

	defer func() {
		closeErr := book.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	for col, name := range header(table) {
		setErr := setCell(book, col+1, 1, name)
		if setErr != nil {
			return setErr
		}
	}

	for r, row := range table.Rows {
		line := r + 2 // header occupies row 1.
		col := 1

		if table.Index != "" {
			var key any = row.Key
			if !row.Time.IsZero() {
				key = row.Time
			}

			setErr := setCell(book, col, line, key)
			if setErr != nil {
				return setErr
			}

			col++
		}

		for _, name := range table.Columns {
			setErr := setCell(book, col, line, row.Values[name])
			if setErr != nil {
				return setErr
			}

			col++
		}
	}

	saveErr := book.SaveAs(path)
	if saveErr != nil {
		return fmt.Errorf("save workbook: %w", saveErr)
	}

	return nil
}

func setCell(book *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}

	err = book.SetCellValue(sheetName, cell, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}

	return nil
}

// FormatCell renders a table cell for text output.
func FormatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.DateOnly)
	default:
		return fmt.Sprint(v)
	}
}
