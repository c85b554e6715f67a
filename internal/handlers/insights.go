package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/faizpoerwita/cuan-check/internal/ai"
	"github.com/faizpoerwita/cuan-check/internal/finance"
	"github.com/faizpoerwita/cuan-check/internal/format"
	"github.com/faizpoerwita/cuan-check/internal/insight"
	"github.com/faizpoerwita/cuan-check/internal/models"
	"github.com/faizpoerwita/cuan-check/internal/repository"
)

type InsightHandler struct {
	Service  *insight.Service
	Recorder repository.RequestRecorder
	Provider string
	Model    string
}

// NewInsightHandler wires the analysis endpoint with its request recorder.
func NewInsightHandler(service *insight.Service, recorder repository.RequestRecorder, provider, model string) *InsightHandler {
	if recorder == nil {
		recorder = repository.NopRecorder{}
	}

	return &InsightHandler{
		Service:  service,
		Recorder: recorder,
		Provider: provider,
		Model:    model,
	}
}

type ExpenseItemRequest struct {
	ID     string  `json:"id"`
	Label  string  `json:"label" validate:"required"`
	Amount float64 `json:"amount"`
}

// InsightsRequest is the canonical request body: raw financial figures. The
// server owns prompt construction; callers never send chat messages.
type InsightsRequest struct {
	Income        float64              `json:"income" validate:"gt=0"`
	Expenses      []ExpenseItemRequest `json:"expenses" validate:"required,min=1,dive"`
	CurrentAge    int                  `json:"current_age"`
	RetirementAge int                  `json:"retirement_age"`
	Target1Year   float64              `json:"target_1_year"`
	Target2Year   float64              `json:"target_2_year"`
}

type StatusResponse struct {
	Condition         models.Condition `json:"condition"`
	MonthlyIncome     float64          `json:"monthlyIncome"`
	TotalExpenses     float64          `json:"totalExpenses"`
	MonthlySavings    float64          `json:"monthlySavings"`
	SavingsPercentage float64          `json:"savingsPercentage"`
	HealthScore       int              `json:"healthScore"`
}

type ExpensesResponse struct {
	Breakdown            []models.CategoryShare `json:"breakdown"`
	TopExpenseCategory   string                 `json:"topExpenseCategory"`
	TopExpensePercentage float64                `json:"topExpensePercentage"`
}

type RiskResponse struct {
	Level   models.RiskLevel    `json:"level"`
	Label   string              `json:"label"`
	Color   string              `json:"color"`
	Factors []models.RiskFactor `json:"factors"`
}

type SummaryResponse struct {
	Indonesian    string `json:"indonesian"`
	OverallHealth string `json:"overallHealth"`
}

// InsightsResponse is the canonical success payload. Data carries the full
// normalized text; AIAnalysis the four named sections; the embedded metrics
// match what the metrics endpoint returns for the same input.
type InsightsResponse struct {
	Data string `json:"data"`
	MetricsResponse
	AIAnalysis map[string]string `json:"aiAnalysis"`
}

// Insights computes the snapshot, performs the single analysis round trip and
// returns the combined payload.
func (h *InsightHandler) Insights(c echo.Context) error {
	var req InsightsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	snapshot, profile := toDomain(req)

	analysis, prompt, raw, err := h.Service.Analyze(c.Request().Context(), snapshot, profile)

	// A cache hit never reached the provider; there is no exchange to record.
	if !analysis.Cached {
		h.record(c.Request().Context(), req, analysis, prompt, raw, err)
	}

	if err != nil {
		slog.Error("insight analysis failed",
			slog.String("request_id", requestID(c)),
			slog.String("error", err.Error()),
		)
		return upstreamFailure(c, upstreamStatus(err))
	}

	return c.JSON(http.StatusOK, buildResponse(snapshot, profile, analysis))
}

func toDomain(req InsightsRequest) (models.Snapshot, models.Profile) {
	items := make([]models.ExpenseItem, 0, len(req.Expenses))
	for _, item := range req.Expenses {
		items = append(items, models.ExpenseItem{
			ID:     item.ID,
			Label:  item.Label,
			Amount: item.Amount,
		})
	}

	snapshot := finance.Compute(req.Income, items)
	profile := models.Profile{
		CurrentAge:    req.CurrentAge,
		RetirementAge: req.RetirementAge,
		Target1Year:   req.Target1Year,
		Target2Year:   req.Target2Year,
	}

	return snapshot, profile
}

func buildResponse(snapshot models.Snapshot, profile models.Profile, analysis insight.Analysis) InsightsResponse {
	return InsightsResponse{
		Data:            analysis.Text,
		MetricsResponse: buildMetrics(snapshot, profile),
		AIAnalysis:      analysis.Sections,
	}
}

func buildSummary(snapshot models.Snapshot) SummaryResponse {
	condition := "surplus"
	if snapshot.MonthlySavings < 0 {
		condition = "defisit"
	}

	health := "perlu perbaikan"
	switch {
	case snapshot.HealthScore >= 66:
		health = "baik"
	case snapshot.HealthScore >= 33:
		health = "cukup"
	}

	return SummaryResponse{
		Indonesian:    "Status keuangan " + condition + " dengan rasio tabungan " + format.Percentage(snapshot.SavingsRatio),
		OverallHealth: health,
	}
}

// upstreamStatus maps the error taxonomy to a response status: the provider's
// own status when it answered, 502 when it did not answer usably.
func upstreamStatus(err error) int {
	var reqErr *ai.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode >= 400 {
		return reqErr.StatusCode
	}

	return http.StatusBadGateway
}

func (h *InsightHandler) record(ctx context.Context, req InsightsRequest, analysis insight.Analysis, prompt string, raw []byte, err error) {
	requestPayload, _ := json.Marshal(req)

	var responsePayload []byte
	if err == nil {
		responsePayload, _ = json.Marshal(analysis)
	}

	entry := repository.InsightRequestLog{
		RequestID:       uuid.New(),
		Provider:        h.Provider,
		Model:           h.Model,
		Prompt:          prompt,
		RequestPayload:  requestPayload,
		ResponsePayload: responsePayload,
		RawResponse:     string(raw),
		Success:         err == nil,
	}
	if err != nil {
		message := err.Error()
		entry.ErrorMessage = &message
	}

	if recordErr := h.Recorder.Record(ctx, entry); recordErr != nil {
		slog.Warn("insight request log failed", slog.String("error", recordErr.Error()))
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
