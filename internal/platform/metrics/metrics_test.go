package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAPIRequest_Labels(t *testing.T) {
	before := testutil.ToFloat64(apiRequestsTotal.WithLabelValues("GET", "/orders/{id}", "200"))
	beforeErr := testutil.ToFloat64(apiRequestsTotal.WithLabelValues("GET", "/orders/{id}", "error"))

	ObserveAPIRequest("GET", "/orders/{id}", 200, 10*time.Millisecond)
	ObserveAPIRequest("GET", "/orders/{id}", 0, 10*time.Millisecond)

	if got := testutil.ToFloat64(apiRequestsTotal.WithLabelValues("GET", "/orders/{id}", "200")); got != before+1 {
		t.Errorf("Expected 200 counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(apiRequestsTotal.WithLabelValues("GET", "/orders/{id}", "error")); got != beforeErr+1 {
		t.Errorf("Expected error counter %v, got %v", beforeErr+1, got)
	}
}

func TestHandler_ExposesCounters(t *testing.T) {
	RecordPaymentOutcome("paid")
	RecordCountdownExpired()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{"payment_outcomes_total", "reservation_countdown_expirations_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected metrics output to contain %s", name)
		}
	}
}
