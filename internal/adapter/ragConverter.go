package adapter

import (
	"github.com/akolanti/SyllabusQA/internal/api"
	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
	"github.com/akolanti/SyllabusQA/internal/rag"
)

func ToSelectResponse(result rag.SelectResult) api.SelectResponse {
	status := api.SelectStatusError
	if result.OK {
		status = api.SelectStatusSuccess
	}
	return api.SelectResponse{
		Status:    status,
		Message:   result.Message,
		Documents: result.Documents,
		Chunks:    result.Chunks,
	}
}

func ToAskResponse(answer rag.Answer) api.AskResponse {
	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	return api.AskResponse{
		Answer:         answer.Text,
		Mode:           string(answer.Mode),
		Sources:        sources,
		TargetDocument: answer.TargetDocument,
	}
}

func ToStatusResponse(status rag.Status) api.StatusResponse {
	res := api.StatusResponse{
		Ready:     status.Ready,
		Loading:   status.Loading,
		Documents: status.Documents,
		Chunks:    status.Chunks,
	}
	if status.Selection.IsSet() {
		res.Selection = &api.SelectionInfo{
			Class:   status.Selection.Class,
			Subject: status.Selection.Subject,
		}
	}
	return res
}

func ToChatEntry(id string, question string, answer rag.Answer) commonModels.ChatEntry {
	return commonModels.ChatEntry{
		Id:       id,
		Class:    answer.Selection.Class,
		Subject:  answer.Selection.Subject,
		Question: question,
		Answer:   answer.Text,
		Mode:     string(answer.Mode),
		Sources:  answer.Sources,
	}
}

func ToHistoryResponse(entries []commonModels.ChatEntry) api.HistoryResponse {
	out := make([]api.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		sources := e.Sources
		if sources == nil {
			sources = []string{}
		}
		out = append(out, api.HistoryEntry{
			Id:        e.Id,
			Class:     e.Class,
			Subject:   e.Subject,
			Question:  e.Question,
			Answer:    e.Answer,
			Mode:      e.Mode,
			Sources:   sources,
			CreatedAt: e.CreatedAt,
		})
	}
	return api.HistoryResponse{Entries: out}
}

func BadRequest(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Id: id,
		Error: api.OutgoingError{
			Code:    code,
			Message: message,
		},
	}
}
