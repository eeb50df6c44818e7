package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainlog/internal/core"
	"trainlog/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	roster := core.NewRoster([]core.Employee{
		{Matricule: "M100", FullName: "Ada Gray", Gender: "Female", Project: "P1", CostCenter: "CC10"},
	})
	st := store.New(nil, nil)
	s := NewServer(":0", st, []string{"Alice", "Bob"}, roster)
	t.Cleanup(func() { s.limiter.Stop() })
	return s
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server, name string) {
	t.Helper()
	rec := do(s, http.MethodPost, "/api/login", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLoginAllowList(t *testing.T) {
	s := newTestServer(t)

	t.Run("unknown operator rejected", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/login", `{"name":"Mallory"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/login", `{"name":"  "}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("case-insensitive match returns configured spelling", func(t *testing.T) {
		rec := do(s, http.MethodPost, "/api/login", `{"name":"alice"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Alice", resp["user"])
	})
}

func TestEndpointsRequireLogin(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/api/records",
		"/api/plans",
		"/api/views/dashboard",
		"/api/views/fiscal",
	} {
		rec := do(s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}
}

func TestCreateRecord(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	body := `{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":2,"sector":"Assembly"}`
	rec := do(s, http.MethodPost, "/api/records", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created core.TrainingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.Trainer)
	assert.Equal(t, "Ada Gray", created.FullName)
	assert.Equal(t, "July", created.MonthName)
	assert.Equal(t, "FY 2024", core.FiscalYear(created.Date))
}

func TestCreateRecordValidation(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	tests := []struct {
		name string
		body string
	}{
		{"missing date", `{"trainee_id":"M100","type":"Qualification","process":"Welding","hours":2,"sector":"A"}`},
		{"missing trainee", `{"date":"2024-07-09","type":"Qualification","process":"Welding","hours":2,"sector":"A"}`},
		{"bad type", `{"date":"2024-07-09","trainee_id":"M100","type":"Onboarding","process":"Welding","hours":2,"sector":"A"}`},
		{"zero hours", `{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":0,"sector":"A"}`},
		{"refreshment without kind", `{"date":"2024-07-09","trainee_id":"M100","type":"Refreshment","process":"Welding","hours":1,"sector":"A"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/api/records", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateRecordKeepsTrainer(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	rec := do(s, http.MethodPost, "/api/records",
		`{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":2,"sector":"A"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created core.TrainingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(s, http.MethodPut, "/api/records/"+created.ID,
		`{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":4,"sector":"A","trainer":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated core.TrainingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 4.0, updated.Hours)
	assert.Equal(t, "Alice", updated.Trainer)
}

func TestDeleteRecordConfirmGate(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	rec := do(s, http.MethodPost, "/api/records",
		`{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":2,"sector":"A"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created core.TrainingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(s, http.MethodDelete, "/api/records/"+created.ID, "")
	assert.Equal(t, http.StatusConflict, rec.Code, "delete without confirm must be refused")

	rec = do(s, http.MethodGet, "/api/records/"+created.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code, "record must survive an unconfirmed delete")

	rec = do(s, http.MethodDelete, "/api/records/"+created.ID+"?confirm=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/records/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportConfirmGateAndReattribution(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	csv := strings.Join([]string{
		"ID,Training Date,Trainee's ID Number,Training Type,Process,Refreshment Type,Number of Training Hours,Sector,Trainer",
		",2024-07-01,M100,Qualification,Welding,,2,Assembly,SomeoneElse",
	}, "\n")

	rec := do(s, http.MethodPost, "/api/records/import", csv)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(s, http.MethodPost, "/api/records/import?confirm=true", csv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["imported"])

	rec = do(s, http.MethodGet, "/api/records", "")
	var records []core.TrainingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].Trainer)
}

func TestImportMalformedCSV(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	rec := do(s, http.MethodPost, "/api/records/import?confirm=true", "ID,Trainer\n\"broken")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(s, http.MethodGet, "/api/records", "")
	var records []core.TrainingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Empty(t, records, "a rejected import must not touch the collection")
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	do(s, http.MethodPost, "/api/records",
		`{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":2,"sector":"A"}`)

	rec := do(s, http.MethodGet, "/api/records/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Trainee's ID Number")
	assert.Contains(t, rec.Body.String(), "2024-07-09")
}

func TestViews(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	do(s, http.MethodPost, "/api/records",
		`{"date":"2024-07-09","trainee_id":"M100","type":"Qualification","process":"Welding","hours":2,"sector":"A"}`)
	do(s, http.MethodPost, "/api/plans",
		`{"date":"2024-08-05","trainee_ids":["M100"],"type":"Qualification","process":"Welding","estimated_hours":3,"sector":"A"}`)

	t.Run("dashboard", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/views/dashboard", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var view struct {
			KPIs struct {
				TotalHours       float64 `json:"total_hours"`
				DistinctTrainees int     `json:"distinct_trainees"`
			} `json:"kpis"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, 2.0, view.KPIs.TotalHours)
		assert.Equal(t, 1, view.KPIs.DistinctTrainees)
	})

	t.Run("planning has calendar grid", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/views/planning?year=2024&month=8", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var view struct {
			Month    int               `json:"month"`
			Plans    []json.RawMessage `json:"plans"`
			Calendar []json.RawMessage `json:"calendar"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, 8, view.Month)
		assert.Len(t, view.Plans, 1)
		assert.NotEmpty(t, view.Calendar)
	})

	t.Run("fiscal defaults to newest year", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/views/fiscal", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var view struct {
			FiscalYear string            `json:"fiscal_year"`
			Months     []json.RawMessage `json:"months"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "FY 2024", view.FiscalYear)
		assert.Len(t, view.Months, 12)
	})

	t.Run("weekly and monthly and trainers respond", func(t *testing.T) {
		for _, target := range []string{"/api/views/weekly", "/api/views/monthly", "/api/views/trainers"} {
			rec := do(s, http.MethodGet, target, "")
			assert.Equal(t, http.StatusOK, rec.Code, target)
		}
	})
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "Alice")

	rec := do(s, http.MethodDelete, "/api/views/dashboard", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	var body struct {
		Checks struct {
			HTTP struct {
				TotalRequests int64  `json:"total_requests"`
				Status        string `json:"status"`
			} `json:"http"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks.HTTP.Status)
	// The healthz call above already went through the tracer.
	assert.GreaterOrEqual(t, body.Checks.HTTP.TotalRequests, int64(1))
}
