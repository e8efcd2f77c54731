package api

import "time"

type SelectStatus string

const (
	SelectStatusSuccess SelectStatus = "success"
	SelectStatusError   SelectStatus = "error"
)

type SelectResponse struct {
	Status    SelectStatus `json:"status" example:"success"`
	Message   string       `json:"message" example:"Ready! Selected: Class 3 - EVS"`
	Documents int          `json:"documents" example:"12"`
	Chunks    int          `json:"chunks" example:"340"`
}

type AskResponse struct {
	Answer         string   `json:"answer" example:"Plants make food using sunlight."`
	Mode           string   `json:"mode,omitempty" example:"general"`
	Sources        []string `json:"sources"`
	TargetDocument string   `json:"target_document,omitempty" example:"evs_ch3.pdf"`
}

type SelectionInfo struct {
	Class   string `json:"class" example:"Class 3"`
	Subject string `json:"subject" example:"EVS"`
}

type StatusResponse struct {
	Selection *SelectionInfo `json:"selection,omitempty"`
	Ready     bool           `json:"ready"`
	Loading   bool           `json:"loading"`
	Documents int            `json:"documents"`
	Chunks    int            `json:"chunks"`
}

type HistoryEntry struct {
	Id        string    `json:"id" example:"2f1c6a52-8f5e-4c1b-9a0e-3b6f3d1f8a11"`
	Class     string    `json:"class"`
	Subject   string    `json:"subject"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Mode      string    `json:"mode,omitempty"`
	Sources   []string  `json:"sources"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type ErrorResponse struct {
	Id    string        `json:"id" example:"6c1f..."`
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Please select both class and subject."`
}

// requests---------------------

type SelectRequest struct {
	Class   string `json:"class" validate:"required" example:"Class 3"`
	Subject string `json:"subject" validate:"required" example:"EVS"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required" example:"What do plants need to grow?"`
	UseVoice bool   `json:"use_voice,omitempty"`
}
