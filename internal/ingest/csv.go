package ingest

import (
	"bytes"
	"encoding/csv"

	"github.com/rotisserie/eris"
)

// ParseCSV parses CSV bytes into a validated dataset.
func ParseCSV(data []byte) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(ErrParse, err.Error())
	}

	if len(records) < 2 {
		return nil, eris.New("ingest: csv has no data rows")
	}

	return buildDataset(records[0], records[1:]), nil
}
