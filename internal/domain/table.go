package domain

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

const (
	ColumnTitle = "Title"
	ColumnURL   = "URL"
)

// AssetTable is the tabular view of an AssetSet.
type AssetTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewAssetTable keeps the input order; it neither sorts nor deduplicates.
func NewAssetTable(records []AssetRecord) AssetTable {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Title, r.URL})
	}
	return AssetTable{
		Columns: []string{ColumnTitle, ColumnURL},
		Rows:    rows,
	}
}

func (t AssetTable) Len() int {
	return len(t.Rows)
}

// Records converts the table back to asset records.
func (t AssetTable) Records() []AssetRecord {
	records := make([]AssetRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, AssetRecord{Title: row[0], URL: row[1]})
	}
	return records
}

// CSV renders the table with a header row and no index column.
func (t AssetTable) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseAssetCSV reads a CSV produced by AssetTable.CSV.
func ParseAssetCSV(data []byte) ([]AssetRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}
	if rows[0][0] != ColumnTitle || rows[0][1] != ColumnURL {
		return nil, fmt.Errorf("read csv: unexpected header %v", rows[0])
	}

	records := make([]AssetRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, AssetRecord{Title: row[0], URL: row[1]})
	}
	return records, nil
}
