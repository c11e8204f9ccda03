package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/modpascal/internal/pascal"
)

type RowData struct {
	Row   int `json:"row"`
	Cells int `json:"cells"`
	Zeros int `json:"zeros"`
}

// ExportData is a stored run with its per-row tallies in one document.
type ExportData struct {
	RunMetadata
	Rows []RowData `json:"rows"`
}

func NewExportData(meta RunMetadata, rows []pascal.RowStat) ExportData {
	data := ExportData{RunMetadata: meta, Rows: make([]RowData, len(rows))}
	for i, r := range rows {
		data.Rows[i] = RowData{Row: r.Row, Cells: r.Cells, Zeros: r.Zeros}
	}
	return data
}

// Export loads runID and writes it as indented JSON to w.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.LoadRows(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(*meta, rows))
}

// ExportFile is Export into a new file at path.
func (s *Store) ExportFile(path, runID string) error {
	return writeFile(path, func(w io.Writer) error { return s.Export(w, runID) })
}
