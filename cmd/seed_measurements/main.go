// Package main writes a fake measurements sheet (.csv or .xlsx) for local development.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/seed"

	log "github.com/sirupsen/logrus"
)

func main() {
	defaults := seed.DefaultParams(time.Now())

	out := flag.String("out", "./data/measurements.csv", "sheet to write, the extension picks the format")
	persons := flag.Int("persons", defaults.Persons, "number of persons")
	rows := flag.Int("rows", defaults.RowsPerPerson, "measurements per person")
	interval := flag.Int("interval-days", defaults.IntervalDays, "days between two measurements of a person")
	missing := flag.Float64("missing-rate", defaults.MissingRate, "chance of an empty optional cell per row")
	seedValue := flag.Int64("seed", defaults.Seed, "random seed")
	flag.Parse()

	params := seed.Params{
		Persons:       *persons,
		RowsPerPerson: *rows,
		Start:         time.Now().UTC().AddDate(0, 0, -(*interval)*(*rows)),
		IntervalDays:  *interval,
		MissingRate:   *missing,
		Seed:          *seedValue,
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("create sheet dir: %s", err)
	}

	store, err := measurements.NewFileStore(*out)
	if err != nil {
		log.Fatalf("measurements store: %s", err)
	}

	all := seed.Generate(params)
	if err := store.Persist(context.Background(), all); err != nil {
		log.Fatalf("write sheet: %s", err)
	}

	log.Printf("%d measurements of %d persons written to [%s]", len(all), len(measurements.PersonsOf(all)), *out)
}
