package finance

import (
	"math"

	"github.com/faizpoerwita/cuan-check/internal/models"
)

// Projections derives the forward-looking calculator figures. Target months
// are 0 when monthly savings are not positive; there is nothing meaningful to
// project from a deficit.
func Projections(s models.Snapshot, p models.Profile) models.Projections {
	years := p.RetirementAge - p.CurrentAge
	if years < 0 {
		years = 0
	}

	return models.Projections{
		YearsToRetirement:  years,
		MonthsToRetirement: years * 12,
		MonthsToTarget1:    monthsToTarget(p.Target1Year, s.MonthlySavings),
		MonthsToTarget2:    monthsToTarget(p.Target2Year, s.MonthlySavings),
		YearlySavings:      s.MonthlySavings * 12,
		WeeklyExpense:      s.TotalExpenses / 4,
		DailyExpense:       s.TotalExpenses / 30,
	}
}

func monthsToTarget(target, savings float64) int {
	if target <= 0 || savings <= 0 {
		return 0
	}

	return int(math.Ceil(target / savings))
}
