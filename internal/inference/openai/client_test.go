package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"github.com/doughub/doughub/internal/inference"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		httpClient:       resty.New().SetBaseURL(serverURL),
		model:            "gpt-4o-mini",
		maxRetryAttempts: 0,
	}
}

func TestClient_ExtractFacts(t *testing.T) {
	tests := []struct {
		name              string
		request           inference.ExtractFactsRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantResponse    inference.ExtractFactsResponse
		wantError       bool
		wantErrorString string
	}{
		{
			name: "Success with two facts",
			request: inference.ExtractFactsRequest{
				Title:      "Cardiology notes",
				SourceType: "notes",
				Content:    "The normal resting heart rate is 60-100 bpm.",
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				// Verify request
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var reqBody ChatCompletionRequest
				err := json.NewDecoder(r.Body).Decode(&reqBody)
				require.NoError(t, err)
				assert.Equal(t, "gpt-4o-mini", reqBody.Model)
				require.Len(t, reqBody.Messages, 2)
				assert.Equal(t, RoleSystem, reqBody.Messages[0].Role)
				assert.Equal(t, RoleUser, reqBody.Messages[1].Role)
				assert.Contains(t, reqBody.Messages[1].Content, "Cardiology notes")

				mockResponse := ChatCompletionResponse{
					ID:      "chatcmpl-123",
					Object:  "chat.completion",
					Created: 1677652288,
					Model:   "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role: RoleAssistant,
								Content: `{"facts": [
									{"content": "The normal resting heart rate is 60-100 bpm.", "source_was_incorrect": false},
									{"content": "Bradycardia is a heart rate below 60 bpm.", "source_was_incorrect": true}
								]}`,
							},
							FinishReason: "stop",
						},
					},
					Usage: Usage{
						PromptTokens:     100,
						CompletionTokens: 50,
						TotalTokens:      150,
					},
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(mockResponse)
			},
			wantResponse: inference.ExtractFactsResponse{
				Facts: []inference.Fact{
					{Content: "The normal resting heart rate is 60-100 bpm.", SourceWasIncorrect: false},
					{Content: "Bradycardia is a heart rate below 60 bpm.", SourceWasIncorrect: true},
				},
			},
		},
		{
			name: "HTTP 500 error",
			request: inference.ExtractFactsRequest{
				Title:   "Notes",
				Content: "Some content.",
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": {"message": "Internal server error"}}`))
			},
			wantError:       true,
			wantErrorString: "response error 500",
		},
		{
			name: "Invalid JSON in response content",
			request: inference.ExtractFactsRequest{
				Title:   "Notes",
				Content: "Some content.",
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				mockResponse := ChatCompletionResponse{
					ID:     "chatcmpl-456",
					Object: "chat.completion",
					Model:  "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: `not json at all`,
							},
							FinishReason: "stop",
						},
					},
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(mockResponse)
			},
			wantError:       true,
			wantErrorString: "json.Unmarshal",
		},
		{
			name: "Empty choices",
			request: inference.ExtractFactsRequest{
				Title:   "Notes",
				Content: "Some content.",
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(ChatCompletionResponse{
					ID:      "chatcmpl-789",
					Object:  "chat.completion",
					Model:   "gpt-4o-mini",
					Choices: []Choice{},
				})
			},
			wantError:       true,
			wantErrorString: "empty response body or choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			gotResponse, gotErr := client.ExtractFacts(context.Background(), tt.request)
			if tt.wantError {
				require.Error(t, gotErr)
				if tt.wantErrorString != "" {
					assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				}
				return
			}

			require.NoError(t, gotErr)
			require.Equal(t, tt.wantResponse, gotResponse)
		})
	}
}

func TestClient_GenerateQuestions(t *testing.T) {
	tests := []struct {
		name              string
		request           inference.GenerateQuestionsRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantResponse    inference.GenerateQuestionsResponse
		wantError       bool
		wantErrorString string
	}{
		{
			name: "Success with one question per fact",
			request: inference.GenerateQuestionsRequest{
				Facts: []inference.Fact{
					{Content: "Insulin is produced in the pancreas."},
				},
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var reqBody ChatCompletionRequest
				err := json.NewDecoder(r.Body).Decode(&reqBody)
				require.NoError(t, err)
				require.Len(t, reqBody.Messages, 2)
				assert.Contains(t, reqBody.Messages[1].Content, "Insulin is produced in the pancreas.")

				mockResponse := ChatCompletionResponse{
					ID:     "chatcmpl-123",
					Object: "chat.completion",
					Model:  "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role: RoleAssistant,
								Content: `{"questions": [
									{"fact_content": "Insulin is produced in the pancreas.", "prompt": "Which organ produces insulin?", "answer": "The pancreas"}
								]}`,
							},
							FinishReason: "stop",
						},
					},
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(mockResponse)
			},
			wantResponse: inference.GenerateQuestionsResponse{
				Questions: []inference.Question{
					{
						FactContent: "Insulin is produced in the pancreas.",
						Prompt:      "Which organ produces insulin?",
						Answer:      "The pancreas",
					},
				},
			},
		},
		{
			name:    "Empty facts - no HTTP request",
			request: inference.GenerateQuestionsRequest{},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				t.Error("HTTP request should not be made for empty facts")
			},
			wantResponse: inference.GenerateQuestionsResponse{},
		},
		{
			name: "Invalid JSON in response content",
			request: inference.GenerateQuestionsRequest{
				Facts: []inference.Fact{
					{Content: "A fact."},
				},
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(ChatCompletionResponse{
					ID:     "chatcmpl-456",
					Object: "chat.completion",
					Model:  "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: `{"questions": [`,
							},
							FinishReason: "length",
						},
					},
				})
			},
			wantError:       true,
			wantErrorString: "json.Unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			gotResponse, gotErr := client.GenerateQuestions(context.Background(), tt.request)
			if tt.wantError {
				require.Error(t, gotErr)
				if tt.wantErrorString != "" {
					assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				}
				return
			}

			require.NoError(t, gotErr)
			require.Equal(t, tt.wantResponse, gotResponse)
		})
	}
}

func TestClient_GradeAnswer(t *testing.T) {
	tests := []struct {
		name              string
		request           inference.GradeAnswerRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantResponse    inference.GradeAnswerResponse
		wantError       bool
		wantErrorString string
	}{
		{
			name: "Correct answer",
			request: inference.GradeAnswerRequest{
				Prompt:         "Which organ produces insulin?",
				ExpectedAnswer: "The pancreas",
				UserAnswer:     "pancreas",
				ResponseTimeMs: 3200,
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var reqBody ChatCompletionRequest
				err := json.NewDecoder(r.Body).Decode(&reqBody)
				require.NoError(t, err)
				require.Len(t, reqBody.Messages, 2)
				assert.Contains(t, reqBody.Messages[1].Content, "User's answer: pancreas")
				assert.Contains(t, reqBody.Messages[1].Content, "Response time (ms): 3200")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(ChatCompletionResponse{
					ID:     "chatcmpl-123",
					Object: "chat.completion",
					Model:  "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: `{"correct": true, "reason": "Equivalent phrasing.", "confused_with": ""}`,
							},
							FinishReason: "stop",
						},
					},
				})
			},
			wantResponse: inference.GradeAnswerResponse{
				Correct: true,
				Reason:  "Equivalent phrasing.",
			},
		},
		{
			name: "Wrong answer with confusion",
			request: inference.GradeAnswerRequest{
				Prompt:         "What does the gallbladder store?",
				ExpectedAnswer: "Bile",
				UserAnswer:     "Insulin",
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(ChatCompletionResponse{
					ID:     "chatcmpl-456",
					Object: "chat.completion",
					Model:  "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: `{"correct": false, "reason": "Insulin is produced by the pancreas, not stored by the gallbladder.", "confused_with": "pancreas secretion"}`,
							},
							FinishReason: "stop",
						},
					},
				})
			},
			wantResponse: inference.GradeAnswerResponse{
				Correct:      false,
				Reason:       "Insulin is produced by the pancreas, not stored by the gallbladder.",
				ConfusedWith: "pancreas secretion",
			},
		},
		{
			name: "Empty response content",
			request: inference.GradeAnswerRequest{
				Prompt:         "A question?",
				ExpectedAnswer: "An answer",
				UserAnswer:     "Something",
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(ChatCompletionResponse{
					ID:     "chatcmpl-789",
					Object: "chat.completion",
					Model:  "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: "",
							},
							FinishReason: "stop",
						},
					},
				})
			},
			wantError:       true,
			wantErrorString: "empty response content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			gotResponse, gotErr := client.GradeAnswer(context.Background(), tt.request)
			if tt.wantError {
				require.Error(t, gotErr)
				if tt.wantErrorString != "" {
					assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				}
				return
			}

			require.NoError(t, gotErr)
			require.Equal(t, tt.wantResponse, gotResponse)
		})
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var requestCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCount.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": {"message": "overloaded"}}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []Choice{
				{
					Index: 0,
					Message: ChoiceMessage{
						Role:    RoleAssistant,
						Content: `{"correct": true, "reason": "Exact match.", "confused_with": ""}`,
					},
					FinishReason: "stop",
				},
			},
		})
	}))
	defer server.Close()

	client := &Client{
		httpClient:       resty.New().SetBaseURL(server.URL),
		model:            "gpt-4o-mini",
		maxRetryAttempts: 2,
	}

	gotResponse, gotErr := client.GradeAnswer(context.Background(), inference.GradeAnswerRequest{
		Prompt:         "A question?",
		ExpectedAnswer: "An answer",
		UserAnswer:     "An answer",
	})
	require.NoError(t, gotErr)
	assert.True(t, gotResponse.Correct)
	assert.Equal(t, int32(2), requestCount.Load())
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "truncated JSON",
			err:  errors.New("json.Unmarshal({\"facts\": [) > unexpected end of JSON input"),
			want: true,
		},
		{
			name: "connection refused",
			err:  errors.New("httpClient.Post > dial tcp 127.0.0.1:443: connect: connection refused"),
			want: true,
		},
		{
			name: "server error",
			err:  errors.New("response error 503: overloaded"),
			want: true,
		},
		{
			name: "rate limited",
			err:  errors.New("response error 429: rate limit exceeded"),
			want: true,
		},
		{
			name: "bad request is not retryable",
			err:  errors.New("response error 400: invalid model"),
			want: false,
		},
		{
			name: "unauthorized is not retryable",
			err:  errors.New("response error 401: invalid api key"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
