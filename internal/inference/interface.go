// Package inference defines the AI collaborator contracts: fact extraction
// from source material, quiz question generation and answer grading. The
// decision logic built on top treats these as black boxes.
package inference

import "context"

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client defines the AI inference operations used by the intake flow.
type Client interface {
	// ExtractFacts pulls discrete, memorizable facts out of a piece of
	// source material.
	ExtractFacts(ctx context.Context, params ExtractFactsRequest) (ExtractFactsResponse, error)
	// GenerateQuestions produces one quiz question per fact.
	GenerateQuestions(ctx context.Context, params GenerateQuestionsRequest) (GenerateQuestionsResponse, error)
	// GradeAnswer judges a user's quiz answer against the expected one.
	GradeAnswer(ctx context.Context, params GradeAnswerRequest) (GradeAnswerResponse, error)
}

// ExtractFactsRequest holds one source item's material.
type ExtractFactsRequest struct {
	Title      string `json:"title"`
	SourceType string `json:"source_type"`
	Content    string `json:"content"`
}

// Fact is one extracted, self-contained statement worth memorizing.
type Fact struct {
	Content string `json:"content"`
	// SourceWasIncorrect is true when the source material shows the user
	// already got this fact wrong (e.g. a marked-up practice exam).
	SourceWasIncorrect bool `json:"source_was_incorrect"`
}

type ExtractFactsResponse struct {
	Facts []Fact `json:"facts"`
}

// GenerateQuestionsRequest asks for one quiz question per fact.
type GenerateQuestionsRequest struct {
	Facts []Fact `json:"facts"`
}

// Question pairs a prompt with its expected answer for one fact.
type Question struct {
	FactContent string `json:"fact_content"`
	Prompt      string `json:"prompt"`
	Answer      string `json:"answer"`
}

type GenerateQuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// GradeAnswerRequest holds one quiz exchange to judge.
type GradeAnswerRequest struct {
	Prompt         string `json:"prompt"`
	ExpectedAnswer string `json:"expected_answer"`
	UserAnswer     string `json:"user_answer"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
}

// GradeAnswerResponse is the structured grading result. ConfusedWith is
// non-empty when the wrong answer matches a different known concept, which
// feeds the confusion-pattern activation signal.
type GradeAnswerResponse struct {
	Correct      bool   `json:"correct"`
	Reason       string `json:"reason"`
	ConfusedWith string `json:"confused_with,omitempty"`
}

const (
	DefaultMaxRetryAttempts = 3
)
