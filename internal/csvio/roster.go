// Package csvio reads and writes the tabular interchange files: the employee
// roster loaded at login and the training-record import/export. Field names
// are stable string keys and must round-trip unchanged.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"trainlog/internal/core"
)

// Roster column keys.
const (
	ColMatricule  = "Matricule"
	ColFullName   = "Full Name"
	ColGender     = "Gender"
	ColProject    = "Project"
	ColCostCenter = "Cost Center"
)

var ErrEmptyFile = errors.New("file has no header row")

// ReadRoster parses an employee roster file (header row + rows). Rows without
// a matricule are skipped; a malformed file is an error surfaced at the
// boundary, with nothing applied.
func ReadRoster(r io.Reader) ([]core.Employee, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse roster csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	idx := headerIndex(rows[0])
	var employees []core.Employee
	for _, row := range rows[1:] {
		e := core.Employee{
			Matricule:  field(row, idx, ColMatricule),
			FullName:   field(row, idx, ColFullName),
			Gender:     field(row, idx, ColGender),
			Project:    field(row, idx, ColProject),
			CostCenter: field(row, idx, ColCostCenter),
		}
		if e.Matricule == "" {
			continue
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// headerIndex maps trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func field(row []string, idx map[string]int, key string) string {
	i, ok := idx[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
