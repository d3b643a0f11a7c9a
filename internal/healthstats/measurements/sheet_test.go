package measurements

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/2beens/healthtracker/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in       string
		expected time.Time
	}{
		{"2025-03-01", day(2025, 3, 1)},
		{" 2025-03-01 ", day(2025, 3, 1)},
		{"2025-03-01 00:00:00", day(2025, 3, 1)},
		{"2025-03-01T18:30:00-03:00", day(2025, 3, 1)},
		{"01/03/2025", day(2025, 3, 1)},
		{"45717", day(2025, 3, 1)},
		{"45717.75", day(2025, 3, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	for _, bad := range []string{"", "ontem", "2025-13-45", "0", "-3"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrMalformedDate, bad)
	}
}

func TestSheetFor(t *testing.T) {
	s, err := SheetFor("/data/medicoes.CSV")
	require.NoError(t, err)
	assert.IsType(t, &CSVSheet{}, s)

	s, err = SheetFor("medicoes.xlsx")
	require.NoError(t, err)
	assert.IsType(t, &XLSXSheet{}, s)

	_, err = SheetFor("medicoes.ods")
	assert.Error(t, err)
}

func TestCSVSheet_ReadLenient(t *testing.T) {
	content := strings.Join([]string{
		"Data,Pessoa,Peso,Extra,Perc_Gordura",
		"2025-01-10,Ana,70.5,x,22",
		"2025-01-10,,71,x,20",
		",,,,",
		"ontem,Bia,\"60,2\",,",
		"2025-02-01,Caio,abc,,19.5",
	}, "\n")

	all, err := (&CSVSheet{}).Read(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "Ana", all[0].Person)
	assert.Equal(t, day(2025, 1, 10), all[0].Date)
	assert.Equal(t, 70.5, *all[0].WeightKg)
	assert.Equal(t, 22.0, *all[0].BodyFatPct)
	// no such columns
	assert.Nil(t, all[0].MusclePct)
	assert.Nil(t, all[0].VisceralFat)

	assert.Equal(t, "Bia", all[1].Person)
	assert.False(t, all[1].HasDate())
	assert.Equal(t, "ontem", all[1].RawDate)
	assert.Equal(t, 60.2, *all[1].WeightKg)
	assert.Nil(t, all[1].BodyFatPct)

	assert.Equal(t, "Caio", all[2].Person)
	assert.Nil(t, all[2].WeightKg)
	assert.Equal(t, 19.5, *all[2].BodyFatPct)
}

func roundTripFixture() []Measurement {
	return []Measurement{
		{
			Person:        "Ana",
			Date:          day(2025, 1, 10),
			WeightKg:      pkg.Float64Ptr(70.55),
			BMI:           pkg.Float64Ptr(0.1 + 0.2),
			BodyFatPct:    pkg.Float64Ptr(22.123456789012345),
			MusclePct:     pkg.Float64Ptr(31),
			MetabolicRate: pkg.Float64Ptr(1502),
			Age:           pkg.Float64Ptr(38),
			VisceralFat:   pkg.Float64Ptr(0.0000001),
		},
		{
			Person:   "Bia",
			Date:     day(2024, 12, 31),
			WeightKg: pkg.Float64Ptr(58),
			Age:      pkg.Float64Ptr(29),
		},
		{
			Person:    "Ana",
			Date:      day(2025, 2, 9),
			WeightKg:  pkg.Float64Ptr(69.9),
			MusclePct: pkg.Float64Ptr(31.4),
		},
		{
			Person:   "Caio, Jr.",
			RawDate:  "sem data",
			WeightKg: pkg.Float64Ptr(88.25),
		},
	}
}

func TestSheets_RoundTripExact(t *testing.T) {
	for name, sheet := range map[string]Sheet{
		"csv":  &CSVSheet{},
		"xlsx": &XLSXSheet{},
	} {
		t.Run(name, func(t *testing.T) {
			fixture := roundTripFixture()

			var buf bytes.Buffer
			require.NoError(t, sheet.Write(&buf, fixture))

			got, err := sheet.Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, fixture, got)
		})
	}
}

func TestCSVSheet_WriteHeaderOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVSheet{}).Write(&buf, nil))
	assert.Equal(t, "Pessoa,Data,Peso,IMC,Perc_Gordura,Perc_Musc,RM,Idade,Visceral\n", buf.String())

	got, err := (&CSVSheet{}).Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}
