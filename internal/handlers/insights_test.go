package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizpoerwita/cuan-check/internal/ai"
	"github.com/faizpoerwita/cuan-check/internal/insight"
	"github.com/faizpoerwita/cuan-check/internal/repository"
)

type fakeClient struct {
	content string
	err     error
}

func (f *fakeClient) Chat(_ context.Context, _ []ai.Message) (string, []byte, error) {
	if f.err != nil {
		return "", []byte(`{"error":"upstream"}`), f.err
	}
	return f.content, []byte(`{"choices":[]}`), nil
}

type captureRecorder struct {
	entries []repository.InsightRequestLog
}

func (r *captureRecorder) Record(_ context.Context, entry repository.InsightRequestLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	return e
}

const requestBody = `{
	"income": 5000000,
	"expenses": [
		{"id": "1", "label": "Makan", "amount": 3640000},
		{"id": "2", "label": "Transport", "amount": 600000},
		{"id": "3", "label": "Hiburan", "amount": 400000}
	],
	"current_age": 25,
	"retirement_age": 55,
	"target_1_year": 50000000,
	"target_2_year": 120000000
}`

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestInsightsSuccess(t *testing.T) {
	client := &fakeClient{content: "### Prioritas Utama\nKurangi pengeluaran makan hingga 3000000 per bulan."}
	service := insight.NewService(client, nil, nil)
	recorder := &captureRecorder{}
	handler := NewInsightHandler(service, recorder, "groq", "llama-3.3-70b-versatile")

	c, rec := postJSON(newTestEcho(), "/api/v1/insights", requestBody)
	require.NoError(t, handler.Insights(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp InsightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Data)
	assert.Contains(t, resp.Data, "Rp 3.000.000")
	assert.Equal(t, 4640000.0, resp.Status.TotalExpenses)
	assert.Equal(t, 360000.0, resp.Status.MonthlySavings)
	assert.InDelta(t, 7.2, resp.Status.SavingsPercentage, 0.01)
	assert.Equal(t, 55, resp.Status.HealthScore)
	assert.Equal(t, "Makan", resp.Expenses.TopExpenseCategory)
	assert.Contains(t, resp.AIAnalysis, insight.SectionPriority)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "cukup", resp.Summary.OverallHealth)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.True(t, entry.Success)
	assert.Equal(t, "groq", entry.Provider)
	assert.NotEmpty(t, entry.Prompt)
	assert.NotEmpty(t, entry.RequestPayload)
	assert.Nil(t, entry.ErrorMessage)
}

func TestInsightsRejectsInvalidBody(t *testing.T) {
	handler := NewInsightHandler(insight.NewService(&fakeClient{content: "ok"}, nil, nil), nil, "groq", "m")

	for name, body := range map[string]string{
		"zero income": `{"income": 0, "expenses": [{"label": "Makan", "amount": 100}]}`,
		"no expenses": `{"income": 5000000, "expenses": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := postJSON(newTestEcho(), "/api/v1/insights", body)
			require.NoError(t, handler.Insights(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestInsightsUpstreamFailure(t *testing.T) {
	client := &fakeClient{err: &ai.RequestError{StatusCode: http.StatusTooManyRequests, Body: "rate limited"}}
	recorder := &captureRecorder{}
	handler := NewInsightHandler(insight.NewService(client, nil, nil), recorder, "groq", "m")

	c, rec := postJSON(newTestEcho(), "/api/v1/insights", requestBody)
	require.NoError(t, handler.Insights(c))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Gagal mendapatkan analisis. Silakan coba lagi.", resp["error"])

	require.Len(t, recorder.entries, 1)
	assert.False(t, recorder.entries[0].Success)
	require.NotNil(t, recorder.entries[0].ErrorMessage)
}

func TestInsightsCacheHitNotRecorded(t *testing.T) {
	cache, err := insight.NewCache(time.Minute)
	require.NoError(t, err)

	client := &fakeClient{content: "### Prioritas Utama\nMenabung."}
	service := insight.NewService(client, nil, cache)
	recorder := &captureRecorder{}
	handler := NewInsightHandler(service, recorder, "groq", "m")

	c, rec := postJSON(newTestEcho(), "/api/v1/insights", requestBody)
	require.NoError(t, handler.Insights(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, recorder.entries, 1)

	// Ristretto admits asynchronously; wait for the buffered set to land.
	var req InsightsRequest
	require.NoError(t, json.Unmarshal([]byte(requestBody), &req))
	snapshot, profile := toDomain(req)
	prompt := service.Normalizer().BuildPrompt(snapshot, profile)
	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := cache.Get(insight.Key(prompt)); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Skip("cache admission did not settle; nothing to assert")
		}
		time.Sleep(10 * time.Millisecond)
	}

	c, rec = postJSON(newTestEcho(), "/api/v1/insights", requestBody)
	require.NoError(t, handler.Insights(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The second response came from the cache; no new exchange row.
	assert.Len(t, recorder.entries, 1)
}

func TestInsightsUnclassifiedErrorIsBadGateway(t *testing.T) {
	client := &fakeClient{err: ai.ErrEmptyCompletion}
	handler := NewInsightHandler(insight.NewService(client, nil, nil), nil, "groq", "m")

	c, rec := postJSON(newTestEcho(), "/api/v1/insights", requestBody)
	require.NoError(t, handler.Insights(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
