package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faizpoerwita/cuan-check/internal/finance"
	"github.com/faizpoerwita/cuan-check/internal/models"
)

type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// MetricsResponse is the insights payload minus the analysis text: the same
// computed figures without an upstream call.
type MetricsResponse struct {
	Status          StatusResponse          `json:"status"`
	Expenses        ExpensesResponse        `json:"expenses"`
	Risk            RiskResponse            `json:"risk"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Projections     models.Projections      `json:"projections"`
	Summary         SummaryResponse         `json:"summary"`
}

// Metrics computes the snapshot and derived figures locally. Useful for
// previews and for clients that render charts before requesting analysis.
func (h *MetricsHandler) Metrics(c echo.Context) error {
	var req InsightsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	snapshot, profile := toDomain(req)

	return c.JSON(http.StatusOK, buildMetrics(snapshot, profile))
}

func buildMetrics(snapshot models.Snapshot, profile models.Profile) MetricsResponse {
	topCategory, topShare := finance.TopCategory(snapshot)
	tier := finance.ClassifyRisk(snapshot.HealthScore)

	return MetricsResponse{
		Status: StatusResponse{
			Condition:         snapshot.Condition,
			MonthlyIncome:     snapshot.MonthlyIncome,
			TotalExpenses:     snapshot.TotalExpenses,
			MonthlySavings:    snapshot.MonthlySavings,
			SavingsPercentage: round1(snapshot.SavingsRatio),
			HealthScore:       snapshot.HealthScore,
		},
		Expenses: ExpensesResponse{
			Breakdown:            snapshot.Breakdown,
			TopExpenseCategory:   topCategory,
			TopExpensePercentage: round1(topShare),
		},
		Risk: RiskResponse{
			Level:   tier.Level,
			Label:   tier.Label,
			Color:   tier.Color,
			Factors: finance.RiskFactors(snapshot),
		},
		Recommendations: finance.Recommendations(snapshot),
		Projections:     finance.Projections(snapshot, profile),
		Summary:         buildSummary(snapshot),
	}
}
