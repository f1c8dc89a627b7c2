// Package ingest parses uploaded employee datasets (CSV or XLSX) into
// validated rows with canonical column names and numeric calculation
// attributes.
package ingest

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/retentionai/retention-cli/internal/model"
)

// ErrUnsupportedFormat indicates an upload with a file type we cannot parse.
var ErrUnsupportedFormat = eris.New("ingest: unsupported file format")

// ErrPDF indicates a PDF upload, rejected with conversion guidance.
var ErrPDF = eris.New("ingest: PDF Upload Detected. Please convert your PDF data to Excel (XLSX) or CSV format for analysis")

// ErrLegacyExcel indicates a binary (OLE2) .xls workbook, which the XLSX
// reader cannot open.
var ErrLegacyExcel = eris.New("ingest: legacy .xls workbook")

// ErrParse indicates a corrupt or malformed file.
var ErrParse = eris.New("ingest: corrupt or malformed file")

// zipMagic is the OOXML container signature. Workbooks named .xls are often
// really .xlsx, so dispatch sniffs the content instead of trusting the name.
var zipMagic = []byte("PK")

// Dataset is a parsed employee dataset: canonical column names and one Row
// per employee. Every row carries the four calculation attributes as
// float64 values.
type Dataset struct {
	Columns []string
	Rows    []model.Row
}

// Parse dispatches on the file extension and returns the validated dataset.
func Parse(filename string, data []byte) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(data)
	case ".xlsx":
		return ParseXLSX(data)
	case ".xls":
		if !bytes.HasPrefix(data, zipMagic) {
			return nil, ErrLegacyExcel
		}
		return ParseXLSX(data)
	case ".pdf":
		return nil, ErrPDF
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "detected: %s", filename)
	}
}
