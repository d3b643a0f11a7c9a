package measurements

// values prefilled in the new-entry form when the person has no previous reading
const (
	DefaultWeightKg      = 70.0
	DefaultBodyFatPct    = 20.0
	DefaultVisceralFat   = 5.0
	DefaultBMI           = 24.0
	DefaultMusclePct     = 30.0
	DefaultMetabolicRate = 1500.0
	DefaultAge           = 30.0
)

type EntryDefaults struct {
	WeightKg      float64 `json:"weight_kg"`
	BMI           float64 `json:"bmi"`
	BodyFatPct    float64 `json:"body_fat_pct"`
	MusclePct     float64 `json:"muscle_pct"`
	MetabolicRate float64 `json:"metabolic_rate"`
	Age           float64 `json:"age"`
	VisceralFat   float64 `json:"visceral_fat"`
}

// NewEntryDefaults takes each field from latest when present, the fixed default otherwise.
// Metabolic rate and age are whole numbers in the form, so they are truncated.
func NewEntryDefaults(latest *Measurement) EntryDefaults {
	var m Measurement
	if latest != nil {
		m = *latest
	}
	return EntryDefaults{
		WeightKg:      valueOr(m.WeightKg, DefaultWeightKg),
		BMI:           valueOr(m.BMI, DefaultBMI),
		BodyFatPct:    valueOr(m.BodyFatPct, DefaultBodyFatPct),
		MusclePct:     valueOr(m.MusclePct, DefaultMusclePct),
		MetabolicRate: float64(int64(valueOr(m.MetabolicRate, DefaultMetabolicRate))),
		Age:           float64(int64(valueOr(m.Age, DefaultAge))),
		VisceralFat:   valueOr(m.VisceralFat, DefaultVisceralFat),
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
