package measurements

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// XLSXSheet reads the first worksheet and writes a single-worksheet workbook.
type XLSXSheet struct{}

func (s *XLSXSheet) Read(r io.Reader) ([]Measurement, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close xlsx: %s", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil
	}

	// raw values keep numbers exact and dates as serials, not as display strings
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get xlsx rows: %w", err)
	}

	return decodeRows(rows), nil
}

func (s *XLSXSheet) Write(w io.Writer, all []Measurement) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close xlsx: %s", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	for col, name := range Columns {
		if err := setCell(f, sheetName, col+1, 1, name); err != nil {
			return err
		}
	}

	for i, m := range all {
		rowNum := i + 2
		if err := setCell(f, sheetName, 1, rowNum, m.Person); err != nil {
			return err
		}
		if err := setCell(f, sheetName, 2, rowNum, formatDate(m)); err != nil {
			return err
		}

		values := []*float64{m.WeightKg, m.BMI, m.BodyFatPct, m.MusclePct, m.MetabolicRate, m.Age, m.VisceralFat}
		for j, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+3, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellFloat(sheetName, cell, *v, -1, 64); err != nil {
				return fmt.Errorf("set xlsx cell %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheetName string, col, row int, value string) error {
	if value == "" {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStr(sheetName, cell, value); err != nil {
		return fmt.Errorf("set xlsx cell %s: %w", cell, err)
	}
	return nil
}
