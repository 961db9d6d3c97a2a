// Package capture reads raw engine-test captures (xlsx workbooks or delimited text) into
// positional rows for the normalizer.
package capture

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/ingest"
)

// Format of a capture source.
type Format int

const (
	Workbook Format = iota
	CSV
	TSV
)

// FormatOf picks the reader from a file name or URL path. Anything that is not .csv or .tsv
// is read as a workbook.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return CSV
	case ".tsv", ".txt":
		return TSV
	}
	return Workbook
}

// Read returns one capture per sheet of the source in r.
func Read(r io.Reader, source string, format Format) ([]ingest.RawCapture, error) {
	switch format {
	case CSV:
		c, err := ReadDelimited(r, source, ',')
		if err != nil {
			return nil, err
		}
		return []ingest.RawCapture{c}, nil
	case TSV:
		c, err := ReadDelimited(r, source, '\t')
		if err != nil {
			return nil, err
		}
		return []ingest.RawCapture{c}, nil
	}
	return ReadWorkbook(r, source)
}

// ReadWorkbook returns every sheet of an xlsx workbook with raw cell values, so numbers are
// not rendered through the cell's display format. A sheet that fails to decode is returned
// with Err set and no rows; only an unopenable workbook is an error.
func ReadWorkbook(r io.Reader, source string) ([]ingest.RawCapture, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", source, err)
	}
	defer f.Close()

	var out []ingest.RawCapture
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			out = append(out, ingest.RawCapture{Source: source, Sheet: sheet, Err: fmt.Errorf("read sheet %q: %w", sheet, err)})
			continue
		}
		out = append(out, ingest.RawCapture{Source: source, Sheet: sheet, Rows: rows})
	}
	return out, nil
}

// ReadDelimited reads a single-sheet text capture. The sheet is named after the source file.
func ReadDelimited(r io.Reader, source string, comma rune) (ingest.RawCapture, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return ingest.RawCapture{}, fmt.Errorf("read %s: %w", source, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	base := path.Base(filepath.ToSlash(source))
	return ingest.RawCapture{Source: source, Sheet: strings.TrimSuffix(base, path.Ext(base)), Rows: rows}, nil
}

// ReadFile reads a capture file from disk.
func ReadFile(name string) ([]ingest.RawCapture, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, name, FormatOf(name))
}

// Fetch downloads a capture over HTTP.
func Fetch(ctx context.Context, client *http.Client, url string) ([]ingest.RawCapture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request capture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	// excelize needs the whole archive before it can read the zip directory.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read capture body: %w", err)
	}
	return Read(bytes.NewReader(body), url, FormatOf(req.URL.Path))
}

// Load reads every source, local path or http(s) URL, in order.
func Load(ctx context.Context, client *http.Client, sources []string) ([]ingest.RawCapture, error) {
	var out []ingest.RawCapture
	for _, src := range sources {
		var (
			captures []ingest.RawCapture
			err      error
		)
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			captures, err = Fetch(ctx, client, src)
		} else {
			captures, err = ReadFile(src)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, captures...)
	}
	return out, nil
}
