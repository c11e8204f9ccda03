package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/modpascal/internal/pascal"
)

// Store keeps a history of renders under baseDir, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Divisor     int       `json:"divisor"`
	Density     string    `json:"density"`
	Mode        string    `json:"mode"`
	CellSize    float64   `json:"cell_size"`
	Rows        int       `json:"rows"`
	VirtualRows int       `json:"virtual_rows,omitempty"`
	Output      string    `json:"output"`
	Timestamp   time.Time `json:"timestamp"`
	ElapsedMs   float64   `json:"elapsed_ms"`
	Cells       int       `json:"cells"`
	Zeros       int       `json:"zeros"`
}

// Save writes metadata.json and rows.csv for a render and returns the run
// id. Cells and Zeros are totalled from rows.
func (s *Store) Save(meta RunMetadata, rows []pascal.RowStat) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("mod%d_%d", meta.Divisor, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.Cells, meta.Zeros = 0, 0
	for _, r := range rows {
		meta.Cells += r.Cells
		meta.Zeros += r.Zeros
	}

	err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, "rows.csv"), func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"row", "cells", "zeros"}); err != nil {
			return err
		}
		for _, r := range rows {
			rec := []string{strconv.Itoa(r.Row), strconv.Itoa(r.Cells), strconv.Itoa(r.Zeros)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadRows reads back rows.csv. Malformed records are skipped.
func (s *Store) LoadRows(runID string) ([]pascal.RowStat, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "rows.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []pascal.RowStat{}, nil
	}

	rows := make([]pascal.RowStat, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 3 {
			continue
		}
		n, err1 := strconv.Atoi(rec[0])
		cells, err2 := strconv.Atoi(rec[1])
		zeros, err3 := strconv.Atoi(rec[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		rows = append(rows, pascal.RowStat{Row: n, Cells: cells, Zeros: zeros})
	}

	return rows, nil
}

// writeFile creates path, runs write and reports the close error too.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
