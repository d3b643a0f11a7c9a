// Package seed generates a plausible measurement history for local development.
package seed

import (
	"time"

	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/pkg"

	"github.com/brianvoe/gofakeit/v6"
)

type Params struct {
	Persons       int
	RowsPerPerson int
	Start         time.Time
	IntervalDays  int
	// MissingRate is the chance of leaving one optional cell of a row empty
	MissingRate float64
	Seed        int64
}

func DefaultParams(now time.Time) Params {
	return Params{
		Persons:       8,
		RowsPerPerson: 10,
		Start:         now.UTC().Truncate(24*time.Hour).AddDate(0, 0, -7*10),
		IntervalDays:  7,
		MissingRate:   0.05,
		Seed:          1,
	}
}

type profile struct {
	name     string
	heightM  float64
	age      float64
	male     bool
	weight   float64
	fat      float64
	muscle   float64
	visceral float64
}

// Generate returns Persons*RowsPerPerson rows ordered by person, then date.
// The same params always give the same rows.
func Generate(p Params) []measurements.Measurement {
	faker := gofakeit.New(p.Seed)
	if p.IntervalDays <= 0 {
		p.IntervalDays = 7
	}
	start := p.Start.UTC().Truncate(24 * time.Hour)

	all := make([]measurements.Measurement, 0, p.Persons*p.RowsPerPerson)
	taken := map[string]bool{}
	for range p.Persons {
		pr := newProfile(faker, taken)
		for row := range p.RowsPerPerson {
			date := start.AddDate(0, 0, row*p.IntervalDays)
			all = append(all, pr.measurement(faker, date, p.MissingRate))
			pr.step(faker)
		}
	}
	return all
}

func newProfile(faker *gofakeit.Faker, taken map[string]bool) *profile {
	name := faker.FirstName()
	for taken[name] {
		name = faker.FirstName() + " " + faker.LastName()[:1] + "."
	}
	taken[name] = true

	male := faker.Bool()
	pr := &profile{
		name:    name,
		male:    male,
		heightM: faker.Float64Range(1.55, 1.75),
		age:     float64(faker.IntRange(22, 60)),
		fat:     faker.Float64Range(24, 38),
		muscle:  faker.Float64Range(24, 32),
	}
	if male {
		pr.heightM += 0.1
		pr.fat -= 6
		pr.muscle += 6
	}
	bmi := faker.Float64Range(22, 33)
	pr.weight = bmi * pr.heightM * pr.heightM
	pr.visceral = float64(faker.IntRange(4, 12))
	return pr
}

// step moves the profile one interval along, mostly towards the program goals.
func (pr *profile) step(faker *gofakeit.Faker) {
	pr.weight += faker.Float64Range(-1.2, 0.6)
	pr.fat += faker.Float64Range(-0.9, 0.4)
	pr.muscle += faker.Float64Range(-0.2, 0.5)
	if faker.Float64() < 0.2 && pr.visceral > 1 {
		pr.visceral--
	}
}

func (pr *profile) metabolicRate() float64 {
	// Mifflin-St Jeor
	rate := 10*pr.weight + 625*pr.heightM - 5*pr.age
	if pr.male {
		return rate + 5
	}
	return rate - 161
}

func (pr *profile) measurement(faker *gofakeit.Faker, date time.Time, missingRate float64) measurements.Measurement {
	m := measurements.Measurement{
		Person:        pr.name,
		Date:          date,
		RawDate:       date.Format(measurements.DateLayout),
		WeightKg:      value(pr.weight, 1),
		BMI:           value(pr.weight/(pr.heightM*pr.heightM), 1),
		BodyFatPct:    value(pr.fat, 1),
		MusclePct:     value(pr.muscle, 1),
		MetabolicRate: value(pr.metabolicRate(), 0),
		Age:           value(pr.age, 0),
		VisceralFat:   value(pr.visceral, 0),
	}

	if faker.Float64() < missingRate {
		switch faker.IntRange(0, 2) {
		case 0:
			m.VisceralFat = nil
		case 1:
			m.MetabolicRate = nil
		default:
			m.Age = nil
		}
	}
	return m
}

func value(v float64, places int) *float64 {
	r := pkg.Round(v, places)
	return &r
}
