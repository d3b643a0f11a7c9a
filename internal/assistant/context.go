package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/healthtracker/internal/healthstats/measurements"
)

var planKeywords = []string{
	"treino", "série", "repetições", "descanso", "dieta", "calorias",
	"café", "almoço", "jantar", "exercício", "supino", "agachamento",
}

// IsPlan tells whether a reply reads like a training or diet plan worth
// keeping for download.
func IsPlan(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range planKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// StudentContext is the personal trainer persona for the chat, built from the
// student's latest measurement.
func StudentContext(m measurements.Measurement) string {
	return fmt.Sprintf(`Você é o Personal Trainer oficial do Grupo DPJ.
Aluno: %s.
Métricas Atuais: Peso %skg, IMC %s, Gordura %s%%.
INSTRUÇÃO: Responda de forma completa. Use listas e tópicos.
Evite usar muitos emojis no meio das palavras para facilitar a leitura do plano.`,
		m.Person, metric(m.WeightKg), metric(m.BMI), metric(m.BodyFatPct),
	)
}

// MealContext is the sports nutritionist persona for a meal photo analysis.
func MealContext(m measurements.Measurement, note string) string {
	return fmt.Sprintf(`Atue como Nutricionista Esportivo.
Analise a imagem.
Aluno: %s.
Peso: %skg.
Obs: %s
1. Identifique os alimentos.
2. Estime calorias e macros.
3. Dê um veredito (Ótimo / Cuidado / Ruim).
Use emojis e português do Brasil.`,
		m.Person, metric(m.WeightKg), note,
	)
}

func metric(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
