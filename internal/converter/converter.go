package converter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/tabi/internal/types"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// DefaultOutputName is the file written next to the input when no output
// path is given.
const DefaultOutputName = "plan_dec31.html"

var workbookExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// SupportedExtensions lists the input file types LoadTable accepts.
func SupportedExtensions() []string {
	return []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}
}

// ReadOptions selects what LoadTable reads from a workbook.
type ReadOptions struct {
	// Sheet names the sheet to read. Empty means the active sheet.
	Sheet string
	// RawValues reads cell values without applying number formats.
	RawValues bool
}

// Options configures a single conversion run.
type Options struct {
	InputPath string
	// OutputPath is where the page is written. Empty means OutputName in
	// the input's directory.
	OutputPath string
	// OutputName defaults to DefaultOutputName.
	OutputName string
	Read       ReadOptions
	Page       Page
}

// Convert runs the whole pipeline: load the table, render it, write the page.
// Progress in [0,1] is sent to progressChan without blocking when it is non-nil.
func Convert(opts Options, progressChan chan<- float64) (*types.ConversionResult, error) {
	table, err := LoadTable(opts.InputPath, opts.Read)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"input": opts.InputPath, "rows": len(table)}).Debug("loaded table")

	outputFile := opts.OutputPath
	if outputFile == "" {
		name := opts.OutputName
		if name == "" {
			name = DefaultOutputName
		}
		outputFile = DefaultOutputPath(opts.InputPath, name)
	}

	reportProgress := func(done, total int) {
		if progressChan != nil && total > 0 {
			select {
			case progressChan <- float64(done) / float64(total):
			default:
			}
		}
	}

	it := ClassifyHeader(table)
	title := TitleFromPath(opts.InputPath)
	doc := renderDocument(it, title, opts.Page, reportProgress)

	if err := WriteDocument(doc, outputFile); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"output": outputFile, "rows": len(it.Rows), "header": it.Header != nil}).Debug("wrote document")

	return &types.ConversionResult{
		InputFile:      opts.InputPath,
		OutputFile:     outputFile,
		Title:          title,
		Columns:        HeaderTitles(it, opts.Page),
		HeaderDetected: it.Header != nil,
		RowsRendered:   len(it.Rows),
	}, nil
}

// LoadTable reads the rows of a spreadsheet with every cell as text. The path
// must name an existing file.
func LoadTable(path string, opts ReadOptions) (types.Table, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".csv":
		return readCSVTable(path)
	case workbookExts[ext]:
		return readXLSXTable(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func readCSVTable(path string) (types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedWorkbookError{Path: path, Err: err}
	}

	// Spreadsheet apps prefix exported CSV with a byte order mark.
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	return normalize(records), nil
}

func readXLSXTable(path string, opts ReadOptions) (types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &MalformedWorkbookError{Path: path, Err: err}
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(f.GetActiveSheetIndex())
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, path)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: opts.RawValues})
	if err != nil {
		return nil, &MalformedWorkbookError{Path: path, Err: err}
	}

	return normalize(rows), nil
}

// normalize pads every row to the width of the widest row so the table is
// rectangular, the way the sheet itself is.
func normalize(rows [][]string) types.Table {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	table := make(types.Table, len(rows))
	for i, row := range rows {
		cells := make(types.Row, width)
		copy(cells, row)
		table[i] = cells
	}
	return table
}

// TitleFromPath returns the file name without its extension. No attempt is
// made to read a date out of it.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultOutputPath places name in the same directory as the input.
func DefaultOutputPath(inputPath, name string) string {
	return filepath.Join(filepath.Dir(inputPath), name)
}

// WriteDocument overwrites path with the page.
func WriteDocument(doc types.Document, path string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
