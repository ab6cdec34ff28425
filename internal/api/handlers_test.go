package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"example.com/fittracker/internal/auth"
	"example.com/fittracker/internal/summary"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()
	NewHandler(summary.NewService(nil)).RegisterRoutes(r)
	return r
}

func withScopes(req *http.Request, scopes ...auth.Scope) *http.Request {
	return req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{
		Subject:   "athlete-1",
		TenantID:  "tenant-1",
		Scopes:    auth.NewScopeSet(scopes...),
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func postSummary(t *testing.T, body string, scopes ...auth.Scope) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/trainings", bytes.NewBufferString(body))
	req = withScopes(req, scopes...)
	rr := httptest.NewRecorder()
	newRouter().ServeHTTP(rr, req)
	return rr
}

func TestCreateSummarySuccess(t *testing.T) {
	rr := postSummary(t, `{"workout_type":"RUN","data":[15000,1,75]}`, auth.ScopeTrainingsWrite)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp SummaryView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ReportID)
	require.Equal(t, "RUN", resp.WorkoutCode)
	require.Equal(t, "Running", resp.WorkoutType)
	require.InDelta(t, 9.75, resp.DistanceKm, 1e-9)
	require.InDelta(t, 9.75, resp.MeanSpeedKmh, 1e-9)
	require.InDelta(t, 797.805, resp.Calories, 1e-9)
	require.Equal(t, "Workout type: Running; Duration: 1.000 h; Distance: 9.750 km; Mean speed: 9.750 km/h; Calories burned: 797.805.", resp.Message)
	require.False(t, resp.ComputedAt.IsZero())
}

func TestCreateSummaryErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		scopes []auth.Scope
		status int
		code   string
	}{
		{"missing scope", `{"workout_type":"RUN","data":[15000,1,75]}`, []auth.Scope{auth.ScopeTrainingsRead}, http.StatusForbidden, "forbidden"},
		{"malformed body", `{"workout_type":`, []auth.Scope{auth.ScopeTrainingsWrite}, http.StatusBadRequest, "invalid_request"},
		{"missing workout type", `{"data":[1,2,3]}`, []auth.Scope{auth.ScopeTrainingsWrite}, http.StatusBadRequest, "invalid_request"},
		{"missing data", `{"workout_type":"RUN"}`, []auth.Scope{auth.ScopeTrainingsWrite}, http.StatusBadRequest, "invalid_request"},
		{"unknown workout", `{"workout_type":"XYZ","data":[]}`, []auth.Scope{auth.ScopeTrainingsWrite}, http.StatusUnprocessableEntity, "unknown_workout"},
		{"arity mismatch", `{"workout_type":"RUN","data":[100]}`, []auth.Scope{auth.ScopeTrainingsWrite}, http.StatusUnprocessableEntity, "arity_mismatch"},
		{"zero duration", `{"workout_type":"WLK","data":[9000,0,75,180]}`, []auth.Scope{auth.ScopeTrainingsWrite}, http.StatusUnprocessableEntity, "zero_duration"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postSummary(t, tc.body, tc.scopes...)
			require.Equal(t, tc.status, rr.Code, rr.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			require.Equal(t, tc.code, body["type"])
		})
	}
}

func TestCreateSummaryRejectsOversizedBody(t *testing.T) {
	body := `{"workout_type":"RUN","data":[` + strings.Repeat("1,", maxRequestBytes/2) + `1]}`
	rr := postSummary(t, body, auth.ScopeTrainingsWrite)
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "payload_too_large", resp["type"])
}

func TestCreateSummaryRequiresClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/trainings", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	newRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListTypes(t *testing.T) {
	req := withScopes(httptest.NewRequest(http.MethodGet, "/v1/trainings/types", nil), auth.ScopeTrainingsRead)
	rr := httptest.NewRecorder()
	newRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ListTypesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, []string{"RUN", "SWM", "WLK"}, resp.Items)
}

func TestMethodNotAllowed(t *testing.T) {
	req := withScopes(httptest.NewRequest(http.MethodDelete, "/v1/trainings", nil), auth.ScopeTrainingsWrite)
	rr := httptest.NewRecorder()
	newRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
