package measurements

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// sheet columns, in the order they are written
const (
	ColPerson        = "Pessoa"
	ColDate          = "Data"
	ColWeight        = "Peso"
	ColBMI           = "IMC"
	ColBodyFat       = "Perc_Gordura"
	ColMuscle        = "Perc_Musc"
	ColMetabolicRate = "RM"
	ColAge           = "Idade"
	ColVisceral      = "Visceral"
)

var Columns = []string{
	ColPerson, ColDate, ColWeight, ColBMI, ColBodyFat, ColMuscle, ColMetabolicRate, ColAge, ColVisceral,
}

// Sheet encodes and decodes the whole measurement table.
type Sheet interface {
	Read(r io.Reader) ([]Measurement, error)
	Write(w io.Writer, all []Measurement) error
}

func SheetFor(path string) (Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSheet{}, nil
	case ".xlsx":
		return &XLSXSheet{}, nil
	default:
		return nil, fmt.Errorf("unsupported sheet format: %s", path)
	}
}

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// excel serial day numbers count from this date
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate accepts the layouts written by the known spreadsheet tools and
// returns the UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrMalformedDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		return excelEpoch.AddDate(0, 0, int(math.Floor(serial))), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

func parseNumber(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// decimal comma, as typed in pt-BR spreadsheets
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, nil
	}
	return &v, nil
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(m Measurement) string {
	if m.HasDate() {
		return m.Date.Format(DateLayout)
	}
	return m.RawDate
}

// decodeRows turns a header row plus data rows into measurements.
// Unknown columns are ignored, missing ones leave the fields absent.
func decodeRows(rows [][]string) []Measurement {
	if len(rows) == 0 {
		return nil
	}

	colIndex := make(map[string]int)
	for i, name := range rows[0] {
		colIndex[strings.TrimSpace(name)] = i
	}
	if _, ok := colIndex[ColPerson]; !ok {
		log.Warnf("measurement sheet: no [%s] column in header %v", ColPerson, rows[0])
	}

	cell := func(row []string, col string) string {
		i, ok := colIndex[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	number := func(row []string, rowNum int, col string) *float64 {
		v, err := parseNumber(cell(row, col))
		if err != nil {
			log.Debugf("measurement sheet: row %d, column %s: %s", rowNum, col, err)
			return nil
		}
		return v
	}

	var all []Measurement
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		person := strings.TrimSpace(cell(row, ColPerson))
		if person == "" {
			log.Warnf("measurement sheet: row %d has no person, dropped", rowNum)
			continue
		}

		m := Measurement{
			Person:        person,
			WeightKg:      number(row, rowNum, ColWeight),
			BMI:           number(row, rowNum, ColBMI),
			BodyFatPct:    number(row, rowNum, ColBodyFat),
			MusclePct:     number(row, rowNum, ColMuscle),
			MetabolicRate: number(row, rowNum, ColMetabolicRate),
			Age:           number(row, rowNum, ColAge),
			VisceralFat:   number(row, rowNum, ColVisceral),
		}

		rawDate := strings.TrimSpace(cell(row, ColDate))
		date, err := ParseDate(rawDate)
		if err != nil {
			log.Debugf("measurement sheet: row %d: %s", rowNum, err)
			m.RawDate = rawDate
		} else {
			m.Date = date
		}

		all = append(all, m)
	}

	return all
}

func encodeRow(m Measurement) []string {
	return []string{
		m.Person,
		formatDate(m),
		formatNumber(m.WeightKg),
		formatNumber(m.BMI),
		formatNumber(m.BodyFatPct),
		formatNumber(m.MusclePct),
		formatNumber(m.MetabolicRate),
		formatNumber(m.Age),
		formatNumber(m.VisceralFat),
	}
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
