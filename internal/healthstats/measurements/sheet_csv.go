package measurements

import (
	"encoding/csv"
	"fmt"
	"io"
)

type CSVSheet struct{}

func (s *CSVSheet) Read(r io.Reader) ([]Measurement, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return decodeRows(records), nil
}

func (s *CSVSheet) Write(w io.Writer, all []Measurement) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range all {
		if err := csvWriter.Write(encodeRow(m)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
