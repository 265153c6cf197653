package convert

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// table is parsed CSV content: the first row as field names plus the data
// rows in original order. Rows may be ragged; cell() pads missing fields.
type table struct {
	header []string
	rows   [][]string
}

// parseCSV reads tabular content using the first row as field names.
func parseCSV(content string) (*table, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing csv: no rows")
	}
	return &table{header: records[0], rows: records[1:]}, nil
}

func (t *table) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
