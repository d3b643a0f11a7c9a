package ranking

import (
	"errors"
	"sort"

	"github.com/2beens/healthtracker/internal/healthstats/evolution"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/timeline"

	log "github.com/sirupsen/logrus"
)

// ScoreTerm weighs the normalized evolution of one indicator. Coefficients
// are negative where a reduction is the goal.
type ScoreTerm struct {
	Indicator   measurements.Indicator `json:"indicator"`
	Coefficient float64                `json:"coefficient"`
}

var ScoreTerms = []ScoreTerm{
	{Indicator: measurements.Muscle, Coefficient: 0.40},
	{Indicator: measurements.BodyFat, Coefficient: -0.30},
	{Indicator: measurements.Visceral, Coefficient: -0.20},
	{Indicator: measurements.Weight, Coefficient: -0.10},
}

type Score struct {
	Person string  `json:"person"`
	Score  float64 `json:"score"`
	// weighted contribution per indicator
	Terms   map[measurements.Indicator]float64 `json:"terms"`
	Dropped []measurements.Indicator           `json:"dropped,omitempty"`
}

// CompositeScores scores every person from their first and latest rows.
// Undefined terms are dropped, persons without any defined term are left out.
func CompositeScores(all []measurements.Measurement) []Score {
	var scores []Score
	for _, t := range timeline.All(all) {
		first, err := t.First()
		if err != nil {
			continue
		}
		latest, err := t.Latest()
		if err != nil {
			continue
		}

		s, ok := score(t.Person, first, latest)
		if !ok {
			log.Debugf("composite score: no defined term for [%s], skipped", t.Person)
			continue
		}
		scores = append(scores, s)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

func score(person string, first, latest measurements.Measurement) (Score, bool) {
	s := Score{
		Person: person,
		Terms:  make(map[measurements.Indicator]float64, len(ScoreTerms)),
	}
	for _, term := range ScoreTerms {
		delta, err := evolution.NormalizedDelta(term.Indicator, first, latest)
		if err != nil {
			if !errors.Is(err, evolution.ErrDivisionByZero) && !errors.Is(err, evolution.ErrMissingIndicator) {
				log.Errorf("composite score [%s] %s: %s", person, term.Indicator, err)
			}
			s.Dropped = append(s.Dropped, term.Indicator)
			continue
		}
		contribution := term.Coefficient * delta
		s.Terms[term.Indicator] = contribution
		s.Score += contribution
	}
	return s, len(s.Terms) > 0
}
