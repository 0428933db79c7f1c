// Package excel reads build configuration records from spreadsheet workbooks.
package excel

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/kubeaccel/dockforge/internal/core/config"
)

// Source parses .xlsx workbooks into configuration records. The first sheet's
// first row is the header; each following row is one stage record.
type Source struct{}

// Records reads the workbook at path. It fails when the file cannot be parsed
// or a required column is missing from the header; individual cell problems
// are left to the loader's per-record handling.
func (Source) Records(path string) ([]config.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s: sheet %q has no header row", path, sheet)
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("workbook %s: missing required columns: %s", path, strings.Join(missing, ", "))
	}

	var records []config.Record
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		var rec config.Record
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if !rec.SetColumn(header[i], cell) {
				logrus.Debugf("ignoring unknown column %q", header[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func missingColumns(header []string) []string {
	var missing []string
	for _, req := range config.RequiredColumns {
		found := false
		for _, col := range header {
			if col == req {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req)
		}
	}
	return missing
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
