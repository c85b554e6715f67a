package finance

import (
	"math"

	"github.com/faizpoerwita/cuan-check/internal/models"
)

// RiskTier carries the presentation metadata for one risk level.
type RiskTier struct {
	Level models.RiskLevel `json:"level"`
	Label string           `json:"label"`
	Color string           `json:"color"`
}

// ClassifyRisk maps a health score to a tri-level tier. Thresholds match the
// visualization palette: >=66 green, >=33 yellow, below that red.
func ClassifyRisk(score int) RiskTier {
	switch {
	case score >= 66:
		return RiskTier{Level: models.RiskLevelLow, Label: "Sehat", Color: "#059669"}
	case score >= 33:
		return RiskTier{Level: models.RiskLevelMedium, Label: "Perhatian", Color: "#D97706"}
	default:
		return RiskTier{Level: models.RiskLevelHigh, Label: "Kritis", Color: "#DC2626"}
	}
}

// RiskFactors explains the tier: one factor for the savings position, one for
// expense concentration.
func RiskFactors(s models.Snapshot) []models.RiskFactor {
	savingsFactor := models.RiskFactor{
		Type:        "savings",
		Description: "Memiliki tabungan positif",
		Severity:    "low",
	}
	if s.MonthlySavings < 0 {
		savingsFactor.Description = "Pengeluaran melebihi pendapatan"
		savingsFactor.Severity = "high"
	} else if s.SavingsRatio < 20 {
		savingsFactor.Severity = "medium"
	}

	_, topShare := TopCategory(s)
	expenseFactor := models.RiskFactor{
		Type:        "expenses",
		Description: "Distribusi pengeluaran cukup baik",
		Severity:    "low",
	}
	if topShare > 50 {
		expenseFactor.Description = "Pengeluaran terbesar terlalu tinggi"
		expenseFactor.Severity = "high"
	} else if topShare > 30 {
		expenseFactor.Severity = "medium"
	}

	return []models.RiskFactor{savingsFactor, expenseFactor}
}

// Recommendations proposes reductions for every category holding more than 30%
// of total spending: trim half of the excess share, valuing the saving against
// the category's own amount.
func Recommendations(s models.Snapshot) []models.Recommendation {
	out := make([]models.Recommendation, 0)
	for _, share := range s.Breakdown {
		if share.Percentage <= 30 {
			continue
		}

		excess := share.Percentage - 30
		out = append(out, models.Recommendation{
			Category:          share.Category,
			CurrentAmount:     share.Amount,
			CurrentPercentage: round1(share.Percentage),
			TargetReduction:   round1(excess / 2),
			PotentialSavings:  math.Round(share.Amount * excess / 200),
		})
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
