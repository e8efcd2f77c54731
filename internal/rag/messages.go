package rag

import (
	"errors"

	"github.com/akolanti/SyllabusQA/internal/rag/llm"
)

// Messages holds every fixed user facing string. Callers compare against these values, so they must not change.
var Messages = struct {
	SelectFirst      string
	LLMFallback      string
	NoContext        string
	DocumentNotFound string
	Ready            string
	NoData           string
	MissingSelection string
	UnknownClass     string
	UnknownSubject   string
	EmptyQuestion    string
	VoiceUnsupported string
}{
	SelectFirst:      "Please select a class and subject first.",
	LLMFallback:      llm.FallbackAnswer,
	NoContext:        "No context available",
	DocumentNotFound: "PDF '%s' not found in the loaded syllabus.",
	Ready:            "Ready! Selected: %s - %s",
	NoData:           "No data found for %s - %s",
	MissingSelection: "Please select both class and subject.",
	UnknownClass:     "Unknown class: %s",
	UnknownSubject:   "Unknown subject: %s",
	EmptyQuestion:    "No question provided",
	VoiceUnsupported: "Voice input is not supported, send the question as text.",
}

var (
	ErrMissingSelection = errors.New("class and subject are required")
	ErrUnknownClass     = errors.New("unknown class")
	ErrUnknownSubject   = errors.New("unknown subject")
	ErrEmptyQuestion    = errors.New("question is empty")
)

const generalPrompt = `You are a helpful teacher for students. Answer the question based on the provided context. Use the information from the context. Keep your answer concise and in simple words suitable for students.

Context: %s

Question: %s

Answer:`

const targetedPrompt = `You are an expert teacher. Analyze the provided content and create a comprehensive response. For summary requests, provide a well-structured summary. For generation requests, create the requested content based on the material.

Content: %s

Request: %s

Comprehensive response:`
