package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"healthsync/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	results    []services.CompareResult
	plans      []services.BrowsePlan
	compareErr error
	plansErr   error
	lastReq    services.CompareRequest
}

func (s *stubEngine) ComparePlans(req services.CompareRequest) ([]services.CompareResult, error) {
	s.lastReq = req
	if s.compareErr != nil {
		return nil, s.compareErr
	}
	return s.results, nil
}

func (s *stubEngine) GetAllPlans() ([]services.BrowsePlan, error) {
	if s.plansErr != nil {
		return nil, s.plansErr
	}
	return s.plans, nil
}

func newTestApp(engine *stubEngine) *fiber.App {
	app := fiber.New()
	cc := NewCompareController(engine, log.New(io.Discard, "", 0))
	app.Post("/api/compare", cc.Compare)
	app.Get("/api/plans", cc.GetAllPlans)
	app.Get("/api/provinces", cc.GetProvinces)
	app.Get("/api/health", cc.HealthCheck)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestCompareValidRequest(t *testing.T) {
	engine := &stubEngine{
		results: []services.CompareResult{
			{PlanID: 1, PlanName: "Essential Care", MonthlyPrice: 125.00, AnnualPrice: 1500.00},
		},
	}
	app := newTestApp(engine)

	status, body := postJSON(t, app, "/api/compare", map[string]interface{}{
		"age":            30,
		"province":       "ON",
		"smoking_status": "non-smoker",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Essential Care", first["plan_name"])
	assert.Equal(t, 125.00, first["monthly_price"])

	assert.Equal(t, 30, engine.lastReq.Age)
	assert.Equal(t, "ON", engine.lastReq.Province)
	assert.Equal(t, "non-smoker", engine.lastReq.SmokingStatus)
}

func TestCompareNormalizesProvinceCase(t *testing.T) {
	engine := &stubEngine{}
	app := newTestApp(engine)

	status, _ := postJSON(t, app, "/api/compare", map[string]interface{}{
		"age":            30,
		"province":       " on ",
		"smoking_status": "non-smoker",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ON", engine.lastReq.Province)
}

func TestCompareFiltersAppliedEcho(t *testing.T) {
	engine := &stubEngine{}
	app := newTestApp(engine)

	_, body := postJSON(t, app, "/api/compare", map[string]interface{}{
		"age":            45,
		"province":       "BC",
		"smoking_status": "smoker",
		"budget_max":     200,
		"addons":         []string{"vision"},
	})

	filters := body["filters_applied"].(map[string]interface{})
	assert.Equal(t, float64(45), filters["age"])
	assert.Equal(t, "BC", filters["province"])
	assert.Equal(t, "smoker", filters["smoking_status"])
	assert.Equal(t, "all", filters["coverage_type"])
	assert.Equal(t, "all", filters["plan_type"])

	budget := filters["budget_range"].(map[string]interface{})
	assert.Nil(t, budget["min"])
	assert.Equal(t, float64(200), budget["max"])

	addons := filters["requested_addons"].([]interface{})
	require.Len(t, addons, 1)
	assert.Equal(t, "vision", addons[0])
}

func TestCompareEmptyResultIsNotAnError(t *testing.T) {
	engine := &stubEngine{results: []services.CompareResult{}}
	app := newTestApp(engine)

	status, body := postJSON(t, app, "/api/compare", map[string]interface{}{
		"age":            30,
		"province":       "YT",
		"smoking_status": "non-smoker",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["results"])
}

func TestCompareValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{
			name:  "missing age",
			body:  map[string]interface{}{"province": "ON", "smoking_status": "non-smoker"},
			field: "age",
		},
		{
			name:  "age over limit",
			body:  map[string]interface{}{"age": 121, "province": "ON", "smoking_status": "non-smoker"},
			field: "age",
		},
		{
			name:  "missing province",
			body:  map[string]interface{}{"age": 30, "smoking_status": "non-smoker"},
			field: "province",
		},
		{
			name:  "invalid province code",
			body:  map[string]interface{}{"age": 30, "province": "XX", "smoking_status": "non-smoker"},
			field: "province",
		},
		{
			name:  "invalid smoking status",
			body:  map[string]interface{}{"age": 30, "province": "ON", "smoking_status": "sometimes"},
			field: "smoking_status",
		},
		{
			name:  "invalid coverage type",
			body:  map[string]interface{}{"age": 30, "province": "ON", "smoking_status": "non-smoker", "coverage_type": "pet"},
			field: "coverage_type",
		},
	}

	engine := &stubEngine{}
	app := newTestApp(engine)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postJSON(t, app, "/api/compare", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Validation failed", body["error"])

			details := body["details"].([]interface{})
			require.NotEmpty(t, details)
			found := false
			for _, d := range details {
				if d.(map[string]interface{})["field"] == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a detail for field %q", tt.field)
		})
	}
}

func TestCompareZeroAgeIsValid(t *testing.T) {
	engine := &stubEngine{}
	app := newTestApp(engine)

	status, _ := postJSON(t, app, "/api/compare", map[string]interface{}{
		"age":            0,
		"province":       "ON",
		"smoking_status": "non-smoker",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, engine.lastReq.Age)
}

func TestCompareMalformedBody(t *testing.T) {
	app := newTestApp(&stubEngine{})

	req := httptest.NewRequest("POST", "/api/compare", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCompareStoreFailure(t *testing.T) {
	engine := &stubEngine{compareErr: errors.New("connection refused")}
	app := newTestApp(engine)

	status, body := postJSON(t, app, "/api/compare", map[string]interface{}{
		"age":            30,
		"province":       "ON",
		"smoking_status": "non-smoker",
	})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to compare plans", body["error"])
}

func TestGetAllPlans(t *testing.T) {
	engine := &stubEngine{
		plans: []services.BrowsePlan{
			{ID: 1, PlanName: "Premium Shield", Rating: 4.8},
			{ID: 2, PlanName: "Basic Care", Rating: 3.9},
		},
	}
	app := newTestApp(engine)

	status, body := getJSON(t, app, "/api/plans")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])
	assert.Nil(t, body["notice"])
}

func TestGetAllPlansDegradesOnStoreFailure(t *testing.T) {
	engine := &stubEngine{plansErr: errors.New("dial tcp: connection refused")}
	app := newTestApp(engine)

	status, body := getJSON(t, app, "/api/plans")

	// Browsing degrades instead of failing: empty catalog plus a notice
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["plans"])
	notice := body["notice"].(string)
	assert.NotEmpty(t, notice)
	assert.Contains(t, notice, "AI Search")
}

func TestGetProvinces(t *testing.T) {
	app := newTestApp(&stubEngine{})

	status, body := getJSON(t, app, "/api/provinces")

	assert.Equal(t, fiber.StatusOK, status)
	provinces := body["provinces"].([]interface{})
	assert.Len(t, provinces, 13)

	first := provinces[0].(map[string]interface{})
	assert.NotEmpty(t, first["code"])
	assert.NotEmpty(t, first["name"])
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(&stubEngine{})

	status, body := getJSON(t, app, "/api/health")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["service"])
	assert.NotEmpty(t, body["timestamp"])
}
