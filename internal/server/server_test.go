package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"crewdesk/internal/db"
	"crewdesk/internal/domain"
	"crewdesk/internal/engine"
	"crewdesk/internal/logging"
	"crewdesk/internal/migrate"
	"crewdesk/internal/store"
)

type testServer struct {
	URL    string
	client *http.Client
	close  func()
}

func (s *testServer) Client() *http.Client { return s.client }
func (s *testServer) Close()               { s.close() }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	workspace := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := engine.New(store.NewSQLite(conn), logging.Nop())
	handler, err := New(Config{Engine: e, BasePath: "/v1"})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: handler}
	go srv.Serve(ln)
	ts := &testServer{
		URL:    "http://" + ln.Addr().String(),
		client: &http.Client{},
		close: func() {
			srv.Shutdown(context.Background())
			ln.Close()
			conn.Close()
		},
	}
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	res, body := doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/v1/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", res.StatusCode, body)
	}
}

func TestCompanyLifecycle(t *testing.T) {
	ts := newTestServer(t)
	res, body := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/v1/companies", map[string]any{
		"name": "Dana", "company": "Acme HVAC", "specialty": "HVAC", "hourly_rate": 120,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", res.StatusCode, body)
	}
	var created domain.Company
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("no id assigned: %s", body)
	}

	res, body = doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/v1/companies/"+created.ID, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", res.StatusCode, body)
	}

	res, _ = doJSON(t, ts.Client(), http.MethodDelete, ts.URL+"/v1/companies/"+created.ID, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", res.StatusCode)
	}

	res, body = doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/v1/companies/"+created.ID, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d", res.StatusCode)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, body)
	}
	if envelope.Error.Code != "not_found" {
		t.Fatalf("error code = %q, body = %s", envelope.Error.Code, body)
	}
}

func TestValidationErrorEnvelope(t *testing.T) {
	ts := newTestServer(t)
	res, body := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/v1/companies", map[string]any{
		"company": "No Contact Name",
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", res.StatusCode, body)
	}
	if !bytes.Contains(body, []byte(`"error"`)) {
		t.Fatalf("missing envelope: %s", body)
	}
}

func TestPatternApplyEndpoint(t *testing.T) {
	ts := newTestServer(t)
	res, body := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/v1/patterns", map[string]any{
		"name":       "Daily round",
		"company_id": "c1",
		"job_id":     "j1",
		"start_date": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"frequency":  "daily",
		"interval":   1,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create pattern status = %d, body = %s", res.StatusCode, body)
	}

	res, body = doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/v1/patterns/apply", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("apply status = %d, body = %s", res.StatusCode, body)
	}
	var out map[string]int
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["generated"] != 20 {
		t.Fatalf("generated = %d, want 20", out["generated"])
	}

	res, body = doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/v1/entries", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list entries status = %d", res.StatusCode)
	}
	var entries []domain.ScheduleEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 20 {
		t.Fatalf("entries = %d, want 20", len(entries))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	res, body := doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/v1/settings", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", res.StatusCode)
	}
	var s domain.Settings
	if err := json.Unmarshal(body, &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.ReminderHours != 24 {
		t.Fatalf("default reminder hours = %d", s.ReminderHours)
	}
	s.ReminderHours = 12
	res, body = doJSON(t, ts.Client(), http.MethodPut, ts.URL+"/v1/settings", s)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", res.StatusCode, body)
	}
	res, body = doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/v1/settings", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("second get status = %d", res.StatusCode)
	}
	if err := json.Unmarshal(body, &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.ReminderHours != 12 {
		t.Fatalf("reminder hours = %d, want 12", s.ReminderHours)
	}
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)
	res, body := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/v1/companies", map[string]any{
		"name": "Dana", "company": "Acme HVAC",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", res.StatusCode, body)
	}
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/export/companies.csv", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	text := string(data)
	if !strings.Contains(text, "Acme HVAC") || !strings.HasPrefix(text, "ID,Name,Company") {
		t.Fatalf("csv body: %s", text)
	}
}

func TestAuthRequiredWhenSecretSet(t *testing.T) {
	workspace := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := engine.New(store.NewSQLite(conn), logging.Nop())
	handler, err := New(Config{Engine: e, BasePath: "/v1", Auth: AuthConfig{Secret: "test-secret"}})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: handler}
	go srv.Serve(ln)
	t.Cleanup(func() {
		srv.Shutdown(context.Background())
		ln.Close()
	})
	url := "http://" + ln.Addr().String()

	res, body := doJSON(t, &http.Client{}, http.MethodGet, url+"/v1/companies", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, body = %s", res.StatusCode, body)
	}

	// Health stays open.
	res, _ = doJSON(t, &http.Client{}, http.MethodGet, url+"/v1/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", res.StatusCode)
	}
}
