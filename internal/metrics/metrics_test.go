package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	return rec.Body.String()
}

func TestObserveSave(t *testing.T) {
	m := New()
	m.ObserveSave(1, nil)
	m.ObserveSave(2, nil)
	m.ObserveSave(0, errors.New("disk full"))

	body := scrape(t, m)
	for _, want := range []string{
		`hisab_state_saves_total{result="ok"} 2`,
		`hisab_state_saves_total{result="error"} 1`,
		`hisab_state_revision 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSave(1, nil)
	m.ObserveMutation("income", "create")
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
	m.ObserveConfirmation("yes")
	m.ObserveRejected("rate_limit")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("nil handler status = %d, want 404", rec.Code)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveMutation("market", "toggle")
	m.ObserveRequest("POST", "/market/{id}/toggle", 303, 5*time.Millisecond)
	m.ObserveRejected("rate_limit")

	body := scrape(t, m)
	for _, want := range []string{
		`hisab_ledger_mutations_total{kind="market",op="toggle"} 1`,
		`hisab_http_requests_total{method="POST",route="/market/{id}/toggle",status="303"} 1`,
		`hisab_http_rejected_total{reason="rate_limit"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
