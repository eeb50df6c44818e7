package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"trainlog/internal/core"
)

// Training record column keys. The export writes exactly these, the import
// reads them by name so column order does not matter.
const (
	ColID              = "ID"
	ColTrainingDate    = "Training Date"
	ColTraineeID       = "Trainee's ID Number"
	ColTrainingType    = "Training Type"
	ColProcess         = "Process"
	ColRefreshmentType = "Refreshment Type"
	ColTrainingHours   = "Number of Training Hours"
	ColSector          = "Sector"
	ColTrainer         = "Trainer"
)

var recordHeader = []string{
	ColID,
	ColTrainingDate,
	ColTraineeID,
	ColTrainingType,
	ColProcess,
	ColRefreshmentType,
	ColTrainingHours,
	ColSector,
	ColTrainer,
}

// WriteRecords emits a header row followed by one row per record. Only the
// authored fields are exported; enrichment is recomputed on import.
func WriteRecords(w io.Writer, records []core.TrainingRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(recordHeader); err != nil {
		return fmt.Errorf("write record header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Date.String(),
			r.TraineeID,
			string(r.Type),
			r.Process,
			r.RefreshmentKind,
			strconv.FormatFloat(r.Hours, 'f', -1, 64),
			r.Sector,
			r.Trainer,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush record csv: %w", err)
	}
	return nil
}

// ReadRecords parses a record export back into records. Dates and hours are
// parsed leniently the way form input is: an unparseable date comes back as
// the zero date, unparseable hours as zero. A structurally malformed file is
// an error and nothing is returned.
func ReadRecords(r io.Reader) ([]core.TrainingRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse record csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	idx := headerIndex(rows[0])
	records := make([]core.TrainingRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, core.TrainingRecord{
			ID:              field(row, idx, ColID),
			Date:            core.ParseDate(field(row, idx, ColTrainingDate)),
			TraineeID:       field(row, idx, ColTraineeID),
			Type:            core.TrainingType(field(row, idx, ColTrainingType)),
			Process:         field(row, idx, ColProcess),
			RefreshmentKind: field(row, idx, ColRefreshmentType),
			Hours:           core.ParseHours(field(row, idx, ColTrainingHours)),
			Sector:          field(row, idx, ColSector),
			Trainer:         field(row, idx, ColTrainer),
		})
	}
	return records, nil
}
