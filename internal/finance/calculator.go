package finance

import (
	"sort"
	"strings"

	"github.com/faizpoerwita/cuan-check/internal/models"
)

const (
	baseScore = 70

	savingsBonusHigh   = 15
	savingsBonusMid    = 10
	savingsBonusLow    = 5
	negativeRatioPen   = 20
	negativeSavingsPen = 10

	concentrationPenHigh = 15
	concentrationPenMid  = 10
	concentrationPenLow  = 5
)

// Compute derives a Snapshot from income and the entered expense rows.
// Amounts pass through unvalidated; zero income yields a 0 savings ratio
// rather than a non-finite value.
func Compute(income float64, items []models.ExpenseItem) models.Snapshot {
	breakdown := aggregate(items)

	var total float64
	for _, share := range breakdown {
		total += share.Amount
	}

	if total > 0 {
		for i := range breakdown {
			breakdown[i].Percentage = breakdown[i].Amount / total * 100
		}
	}

	savings := income - total
	ratio := 0.0
	if income > 0 {
		ratio = savings / income * 100
	}

	condition := models.ConditionSurplus
	if savings < 0 {
		condition = models.ConditionDeficit
	}

	return models.Snapshot{
		MonthlyIncome:  income,
		TotalExpenses:  total,
		MonthlySavings: savings,
		SavingsRatio:   ratio,
		HealthScore:    healthScore(savings, ratio, breakdown),
		Condition:      condition,
		Breakdown:      breakdown,
	}
}

// aggregate folds rows with the same label (case-insensitive) into one
// category, keeping the first-seen casing, then orders by descending amount.
// Ties keep input order.
func aggregate(items []models.ExpenseItem) []models.CategoryShare {
	index := make(map[string]int, len(items))
	shares := make([]models.CategoryShare, 0, len(items))

	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.Label))
		if pos, ok := index[key]; ok {
			shares[pos].Amount += item.Amount
			continue
		}

		index[key] = len(shares)
		shares = append(shares, models.CategoryShare{
			Category: strings.TrimSpace(item.Label),
			Amount:   item.Amount,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount > shares[j].Amount
	})

	return shares
}

func healthScore(savings, ratio float64, breakdown []models.CategoryShare) int {
	score := baseScore

	switch {
	case ratio >= 30:
		score += savingsBonusHigh
	case ratio >= 20:
		score += savingsBonusMid
	case ratio >= 10:
		score += savingsBonusLow
	case ratio < 0:
		score -= negativeRatioPen
	}

	top := 0.0
	if len(breakdown) > 0 {
		top = breakdown[0].Percentage
	}

	switch {
	case top > 50:
		score -= concentrationPenHigh
	case top > 40:
		score -= concentrationPenMid
	case top > 30:
		score -= concentrationPenLow
	}

	if savings < 0 {
		score -= negativeSavingsPen
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}

// TopCategory returns the largest spending category, or a placeholder when
// there is no expense data.
func TopCategory(s models.Snapshot) (string, float64) {
	if len(s.Breakdown) == 0 {
		return "Tidak ada data", 0
	}

	return s.Breakdown[0].Category, s.Breakdown[0].Percentage
}
