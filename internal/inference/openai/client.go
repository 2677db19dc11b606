// Package openai implements the inference client against the OpenAI chat
// completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/doughub/doughub/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

var _ inference.Client = (*Client)(nil)

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client.
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// JSON parsing errors may come from truncated responses.
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Server errors and rate limiting.
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

func (client *Client) withRetry(ctx context.Context, op func() error) error {
	return retry.Do(
		func() error {
			if err := op(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// complete posts one chat completion and returns the first choice's content.
func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"content", content,
	)
	return content, nil
}

// ExtractFacts implements the inference.Client interface.
func (client *Client) ExtractFacts(
	ctx context.Context,
	params inference.ExtractFactsRequest,
) (inference.ExtractFactsResponse, error) {
	var result inference.ExtractFactsResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.extractFacts(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.ExtractFactsResponse{}, err
	}
	return result, nil
}

const extractFactsPrompt = `You extract flashcard-worthy facts from study material.

Return ONLY a JSON object: {"facts": [{"content": "...", "source_was_incorrect": false}]}

RULES:
- Each fact must be a single, self-contained, testable statement.
- Preserve exact numbers, doses, percentages and ranges verbatim.
- Skip opinions, headings, and anything that is not a checkable fact.
- Set "source_was_incorrect" to true only when the material itself shows the
  learner answered this fact wrongly (e.g. a crossed-out or marked answer).
- No text outside the JSON.`

func (client *Client) extractFacts(
	ctx context.Context,
	params inference.ExtractFactsRequest,
) (inference.ExtractFactsResponse, error) {
	userJSON, err := json.Marshal(params)
	if err != nil {
		return inference.ExtractFactsResponse{}, fmt.Errorf("json.Marshal(request) > %w", err)
	}

	content, err := client.complete(ctx, ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.2,
		Messages: []Message{
			{Role: RoleSystem, Content: extractFactsPrompt},
			{Role: RoleUser, Content: string(userJSON)},
		},
	})
	if err != nil {
		return inference.ExtractFactsResponse{}, err
	}

	var decoded inference.ExtractFactsResponse
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return inference.ExtractFactsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return decoded, nil
}

// GenerateQuestions implements the inference.Client interface.
func (client *Client) GenerateQuestions(
	ctx context.Context,
	params inference.GenerateQuestionsRequest,
) (inference.GenerateQuestionsResponse, error) {
	var result inference.GenerateQuestionsResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.generateQuestions(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.GenerateQuestionsResponse{}, err
	}
	return result, nil
}

const generateQuestionsPrompt = `You write short-answer quiz questions for flashcard facts.

Return ONLY a JSON object:
{"questions": [{"fact_content": "...", "prompt": "...", "answer": "..."}]}

RULES:
- One question per input fact, in input order; copy "fact_content" verbatim.
- The prompt must be answerable from memory in one short phrase or number.
- The answer must be the minimal correct response, not a full sentence.
- For numeric facts, ask for the number.
- No text outside the JSON.`

func (client *Client) generateQuestions(
	ctx context.Context,
	params inference.GenerateQuestionsRequest,
) (inference.GenerateQuestionsResponse, error) {
	if len(params.Facts) == 0 {
		return inference.GenerateQuestionsResponse{}, nil
	}

	userJSON, err := json.Marshal(params)
	if err != nil {
		return inference.GenerateQuestionsResponse{}, fmt.Errorf("json.Marshal(request) > %w", err)
	}

	content, err := client.complete(ctx, ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleSystem, Content: generateQuestionsPrompt},
			{Role: RoleUser, Content: string(userJSON)},
		},
	})
	if err != nil {
		return inference.GenerateQuestionsResponse{}, err
	}

	var decoded inference.GenerateQuestionsResponse
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return inference.GenerateQuestionsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return decoded, nil
}

// GradeAnswer implements the inference.Client interface.
func (client *Client) GradeAnswer(
	ctx context.Context,
	params inference.GradeAnswerRequest,
) (inference.GradeAnswerResponse, error) {
	var result inference.GradeAnswerResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.gradeAnswer(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.GradeAnswerResponse{}, err
	}
	return result, nil
}

const gradeAnswerPrompt = `You grade short quiz answers.

Return ONLY a JSON object:
{"correct": true|false, "reason": "...", "confused_with": ""}

RULES:
- Judge meaning, not wording: synonyms and equivalent phrasings are correct.
- Numbers must match exactly, including units.
- An empty answer is incorrect.
- If the wrong answer is itself the correct answer to a DIFFERENT well-known
  concept, name that concept in "confused_with"; otherwise leave it empty.
- No text outside the JSON.`

func (client *Client) gradeAnswer(
	ctx context.Context,
	params inference.GradeAnswerRequest,
) (inference.GradeAnswerResponse, error) {
	userMessage := fmt.Sprintf(`Question: %s
Expected answer: %s
User's answer: %s
Response time (ms): %d

Grade this answer.`, params.Prompt, params.ExpectedAnswer, params.UserAnswer, params.ResponseTimeMs)

	content, err := client.complete(ctx, ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.1,
		Messages: []Message{
			{Role: RoleSystem, Content: gradeAnswerPrompt},
			{Role: RoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return inference.GradeAnswerResponse{}, err
	}

	var decoded inference.GradeAnswerResponse
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return inference.GradeAnswerResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return decoded, nil
}
