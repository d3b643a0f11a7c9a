package measurements

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrResourceUnavailable = errors.New("measurement sheet unavailable")
	ErrResourceLocked      = errors.New("measurement sheet locked")
	ErrInvalidMeasurement  = errors.New("invalid measurement")
	ErrMalformedDate       = errors.New("malformed date")
)

const DateLayout = "2006-01-02"

type Indicator string

const (
	Weight        Indicator = "weight"
	BMI           Indicator = "bmi"
	BodyFat       Indicator = "body_fat"
	Muscle        Indicator = "muscle"
	MetabolicRate Indicator = "metabolic_rate"
	Age           Indicator = "age"
	Visceral      Indicator = "visceral"
)

var Indicators = []Indicator{Weight, BMI, BodyFat, Muscle, MetabolicRate, Age, Visceral}

func (ind Indicator) Valid() bool {
	for _, i := range Indicators {
		if i == ind {
			return true
		}
	}
	return false
}

// Measurement is one sheet row. Nil numeric fields are absent cells.
type Measurement struct {
	Person string
	// Date is UTC midnight, zero when the cell was missing or malformed
	Date    time.Time
	RawDate string

	WeightKg      *float64
	BMI           *float64
	BodyFatPct    *float64
	MusclePct     *float64
	MetabolicRate *float64
	Age           *float64
	VisceralFat   *float64
}

func (m Measurement) HasDate() bool {
	return !m.Date.IsZero()
}

func (m Measurement) Value(ind Indicator) (float64, bool) {
	var v *float64
	switch ind {
	case Weight:
		v = m.WeightKg
	case BMI:
		v = m.BMI
	case BodyFat:
		v = m.BodyFatPct
	case Muscle:
		v = m.MusclePct
	case MetabolicRate:
		v = m.MetabolicRate
	case Age:
		v = m.Age
	case Visceral:
		v = m.VisceralFat
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

func (m Measurement) Validate() error {
	if strings.TrimSpace(m.Person) == "" {
		return fmt.Errorf("%w: empty person", ErrInvalidMeasurement)
	}
	if !m.HasDate() {
		return fmt.Errorf("%w: missing date", ErrInvalidMeasurement)
	}
	return nil
}

// LatestOf returns the person's row with the greatest date, later rows win ties.
func LatestOf(person string, all []Measurement) (Measurement, bool) {
	var latest Measurement
	found := false
	for _, m := range all {
		if m.Person != person || !m.HasDate() {
			continue
		}
		if !found || !m.Date.Before(latest.Date) {
			latest = m
			found = true
		}
	}
	return latest, found
}

// PersonsOf returns distinct persons in first-seen order.
func PersonsOf(all []Measurement) []string {
	seen := make(map[string]bool)
	var persons []string
	for _, m := range all {
		if seen[m.Person] {
			continue
		}
		seen[m.Person] = true
		persons = append(persons, m.Person)
	}
	return persons
}

type measurementJson struct {
	Person        string   `json:"person"`
	Date          string   `json:"date,omitempty"`
	RawDate       string   `json:"raw_date,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	BMI           *float64 `json:"bmi,omitempty"`
	BodyFatPct    *float64 `json:"body_fat_pct,omitempty"`
	MusclePct     *float64 `json:"muscle_pct,omitempty"`
	MetabolicRate *float64 `json:"metabolic_rate,omitempty"`
	Age           *float64 `json:"age,omitempty"`
	VisceralFat   *float64 `json:"visceral_fat,omitempty"`
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	mj := measurementJson{
		Person:        m.Person,
		WeightKg:      m.WeightKg,
		BMI:           m.BMI,
		BodyFatPct:    m.BodyFatPct,
		MusclePct:     m.MusclePct,
		MetabolicRate: m.MetabolicRate,
		Age:           m.Age,
		VisceralFat:   m.VisceralFat,
	}
	if m.HasDate() {
		mj.Date = m.Date.Format(DateLayout)
	} else {
		mj.RawDate = m.RawDate
	}
	return json.Marshal(mj)
}

func (m *Measurement) UnmarshalJSON(data []byte) error {
	var mj measurementJson
	if err := json.Unmarshal(data, &mj); err != nil {
		return err
	}

	*m = Measurement{
		Person:        strings.TrimSpace(mj.Person),
		RawDate:       mj.Date,
		WeightKg:      mj.WeightKg,
		BMI:           mj.BMI,
		BodyFatPct:    mj.BodyFatPct,
		MusclePct:     mj.MusclePct,
		MetabolicRate: mj.MetabolicRate,
		Age:           mj.Age,
		VisceralFat:   mj.VisceralFat,
	}
	if mj.Date == "" {
		return nil
	}

	date, err := ParseDate(mj.Date)
	if err != nil {
		return err
	}
	m.Date = date
	m.RawDate = ""
	return nil
}
