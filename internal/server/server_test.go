package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/akolanti/SyllabusQA/internal/data/store"
	"github.com/akolanti/SyllabusQA/internal/handlers"
	"github.com/akolanti/SyllabusQA/internal/rag"
)

type stubService struct{}

func (stubService) Classes() []string  { return []string{"Class 3"} }
func (stubService) Subjects() []string { return []string{"EVS"} }
func (stubService) SelectCorpus(ctx context.Context, class, subject string) (rag.SelectResult, error) {
	return rag.SelectResult{OK: true, Message: "Ready! Selected: " + class + " - " + subject}, nil
}
func (stubService) Ask(ctx context.Context, question string) (rag.Answer, error) {
	return rag.Answer{Text: rag.Messages.SelectFirst}, nil
}
func (stubService) Answer(ctx context.Context, query string) rag.Answer {
	return rag.Answer{Text: rag.Messages.SelectFirst}
}
func (stubService) Status() rag.Status { return rag.Status{} }

var (
	routerOnce   sync.Once
	sharedRouter http.Handler
)

// routes mount on the shared router, so register them once per test binary
func testRouter() http.Handler {
	routerOnce.Do(func() {
		sharedRouter = RegisterRoutes(handlers.NewHandler(stubService{}, store.NewInMemoryHistoryStore()))
	})
	return sharedRouter
}

func TestRegisterRoutes(t *testing.T) {
	router := testRouter()

	tests := []struct {
		method   string
		path     string
		body     string
		wantCode int
		contains string
	}{
		{http.MethodGet, "/health", "", http.StatusOK, `"ok"`},
		{http.MethodGet, "/api/classes", "", http.StatusOK, "Class 3"},
		{http.MethodGet, "/api/subjects", "", http.StatusOK, "EVS"},
		{http.MethodPost, "/api/select", `{"class":"Class 3","subject":"EVS"}`, http.StatusOK, "Ready! Selected: Class 3 - EVS"},
		{http.MethodPost, "/api/ask", `{"question":"what is rain?"}`, http.StatusOK, rag.Messages.SelectFirst},
		{http.MethodGet, "/api/status", "", http.StatusOK, `"ready":false`},
		{http.MethodGet, "/api/history", "", http.StatusOK, "what is rain?"},
		{http.MethodDelete, "/api/history", "", http.StatusNoContent, ""},
		{http.MethodGet, "/api/ask", "", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/metrics", "", http.StatusOK, "http_requests_total"},
	}
	for i, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.RemoteAddr = "198.51.100." + string(rune('0'+i)) + ":9000"
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d; want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestRouter_SwaggerRedirect(t *testing.T) {
	router := testRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	if rec.Code != http.StatusMovedPermanently || rec.Header().Get("Location") != "/swagger/index.html" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
