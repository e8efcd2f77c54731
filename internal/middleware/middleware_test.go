package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/SyllabusQA/internal/api"
	"github.com/akolanti/SyllabusQA/internal/config"
	"golang.org/x/time/rate"
)

func TestWrap_InjectsTrace(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantTrace string
	}{
		{"keeps caller trace", "caller-trace", "caller-trace"},
		{"generates trace", "", ""},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := Wrap(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = r.Context().Value(config.TRACE_ID_KEY).(string)
				w.WriteHeader(http.StatusTeapot)
			})
			req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
			req.RemoteAddr = "10.0.0." + string(rune('1'+i)) + ":1234"
			if tt.header != "" {
				req.Header.Set("X-Trace-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != http.StatusTeapot {
				t.Errorf("code = %d", rec.Code)
			}
			if seen == "" {
				t.Fatal("no trace id in context")
			}
			if tt.wantTrace != "" && seen != tt.wantTrace {
				t.Errorf("trace = %s; want %s", seen, tt.wantTrace)
			}
			if rec.Header().Get("X-Trace-Id") != seen {
				t.Errorf("response trace header = %q; want %q", rec.Header().Get("X-Trace-Id"), seen)
			}
		})
	}
}

func TestWrap_RateLimit(t *testing.T) {
	calls := 0
	h := Wrap(func(w http.ResponseWriter, r *http.Request) { calls++ })

	codes := make([]int, 0, config.BURST_RATE_LIMIT_PER_SECOND+1)
	for i := 0; i < config.BURST_RATE_LIMIT_PER_SECOND+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
		req.RemoteAddr = "192.0.2.50:4000"
		rec := httptest.NewRecorder()
		h(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			var res api.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || res.Error.Code != http.StatusTooManyRequests {
				t.Errorf("unexpected limited body %s", rec.Body.String())
			}
		}
	}
	if codes[len(codes)-1] != http.StatusTooManyRequests {
		t.Errorf("request past the burst was not limited: %v", codes)
	}
	if calls != config.BURST_RATE_LIMIT_PER_SECOND {
		t.Errorf("handler ran %d times; want %d", calls, config.BURST_RATE_LIMIT_PER_SECOND)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/classes", nil).WithContext(context.Background())
	other.RemoteAddr = "192.0.2.51:4000"
	rec := httptest.NewRecorder()
	h(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("other ip was limited: %d", rec.Code)
	}
}

func TestIPRateLimiter_EvictsIdle(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.idleAfter = -1
	l.GetLimiter("a")
	l.GetLimiter("b")
	if l.Len() != 1 {
		t.Errorf("idle limiter was not evicted, have %d", l.Len())
	}
}
