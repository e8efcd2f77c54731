package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var ingestedDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "syllabus_ingested_documents_total",
	Help: "Pdf members seen by the corpus loader, labelled by outcome",
}, []string{"result"})

var corpusChunks = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "syllabus_corpus_chunks",
	Help: "Number of chunks in the active corpus",
})

var corpusDocuments = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "syllabus_corpus_documents",
	Help: "Number of documents in the active corpus",
})

var selectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "syllabus_selections_total",
	Help: "Corpus selections labelled by outcome",
}, []string{"result"})

var intentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "syllabus_intent_total",
	Help: "Answered questions labelled by routing mode",
}, []string{"mode"})

var llmFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "syllabus_llm_fallback_total",
	Help: "How often the fallback answer replaced a model response",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IngestedDocument(ok bool) {
	if ok {
		ingestedDocuments.WithLabelValues("ok").Inc()
		return
	}
	ingestedDocuments.WithLabelValues("failed").Inc()
}

func SetCorpusSize(documents, chunks int) {
	corpusDocuments.Set(float64(documents))
	corpusChunks.Set(float64(chunks))
}

func SelectionOutcome(ok bool) {
	if ok {
		selectionsTotal.WithLabelValues("success").Inc()
		return
	}
	selectionsTotal.WithLabelValues("error").Inc()
}

func CountIntent(mode string) {
	intentTotal.WithLabelValues(mode).Inc()
}

func CountLLMFallback() {
	llmFallbackTotal.Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent answering or selecting.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"operation"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30, 60},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureOperationMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
