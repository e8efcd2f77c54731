package handlers

import (
	"errors"
	"net/http"

	"github.com/akolanti/SyllabusQA/internal/adapter"
	"github.com/akolanti/SyllabusQA/internal/adapter/utils"
	"github.com/akolanti/SyllabusQA/internal/api"
	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/data/store"
	"github.com/akolanti/SyllabusQA/internal/rag"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
	"github.com/go-playground/validator/v10"
)

var logRH = logger_i.NewLogger("RequestHandler")

type Handler struct {
	rag      rag.Service
	history  store.HistoryStore
	validate *validator.Validate
}

func NewHandler(service rag.Service, history store.HistoryStore) *Handler {
	return &Handler{
		rag:      service,
		history:  history,
		validate: validator.New(),
	}
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// ClassesHandler godoc
// @Summary      List classes
// @Description  Returns the class display names in catalog order.
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/classes [get]
func (h *Handler) ClassesHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, h.rag.Classes())
}

// SubjectsHandler godoc
// @Summary      List subjects
// @Description  Returns the subject display names in catalog order.
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/subjects [get]
func (h *Handler) SubjectsHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, h.rag.Subjects())
}

// SelectHandler godoc
// @Summary      Select class and subject
// @Description  Loads the syllabus archives for the class, keeps the subject's PDFs and rebuilds the index.
// @Description  A load that finds nothing is reported with status "error" and HTTP 200.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.SelectRequest   true  "Class and subject display names"
// @Success      200      {object}  api.SelectResponse
// @Failure      400      {object}  api.ErrorResponse   "Missing or unknown class/subject"
// @Router       /api/select [post]
func (h *Handler) SelectHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := logRH.WithTrace(r.Context())
	trace := traceId(r.Context())

	var req api.SelectRequest
	if err := decodeBody(r, &req); err != nil {
		log.Warn("Bad select request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, trace, "Bad Request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, trace, rag.Messages.MissingSelection)
		return
	}

	result, err := h.rag.SelectCorpus(r.Context(), req.Class, req.Subject)
	if err != nil {
		log.Warn("selection rejected", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, trace, result.Message)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSelectResponse(result))
}

// AskHandler godoc
// @Summary      Ask a question
// @Description  Answers from the selected syllabus. Mentioning a file like "evs_ch3.pdf" or words such as
// @Description  "summarize" or "write" switch to the targeted mode.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest     true  "Question"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse  "Empty question or voice input"
// @Router       /api/ask [post]
func (h *Handler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctx := r.Context()
	log := logRH.WithTrace(ctx)
	trace := traceId(ctx)

	var req api.AskRequest
	if err := decodeBody(r, &req); err != nil {
		log.Warn("Bad ask request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, trace, "Bad Request")
		return
	}
	if req.UseVoice {
		WriteErrorResponse(w, http.StatusBadRequest, trace, rag.Messages.VoiceUnsupported)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, trace, rag.Messages.EmptyQuestion)
		return
	}

	answer, err := h.rag.Ask(ctx, req.Question)
	if errors.Is(err, rag.ErrEmptyQuestion) {
		WriteErrorResponse(w, http.StatusBadRequest, trace, rag.Messages.EmptyQuestion)
		return
	}
	if err != nil {
		log.Error("ask failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, trace, rag.Messages.LLMFallback)
		return
	}

	entry := adapter.ToChatEntry(utils.GetNewUUID(), req.Question, answer)
	if err := h.history.Append(ctx, entry); err != nil {
		log.Warn("could not record chat history", "error", err)
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(answer))
}

// StatusHandler godoc
// @Summary      Current selection
// @Description  Reports the active class and subject and how many documents and chunks are indexed.
// @Tags         Retrieval
// @Produce      json
// @Success      200  {object}  api.StatusResponse
// @Router       /api/status [get]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(h.rag.Status()))
}

// GetHistoryHandler godoc
// @Summary      Chat history
// @Description  Returns the most recent questions and answers, oldest first.
// @Tags         History
// @Produce      json
// @Success      200  {object}  api.HistoryResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/history [get]
func (h *Handler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	entries, err := h.history.Recent(r.Context(), config.HistoryReadLimit)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, traceId(r.Context()), "Could not read history")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(entries))
}

// ClearHistoryHandler godoc
// @Summary      Clear chat history
// @Tags         History
// @Success      204
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/history [delete]
func (h *Handler) ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	if err := h.history.Clear(r.Context()); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, traceId(r.Context()), "Could not clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
