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

	"github.com/at-ishikawa/momentum/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
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

const systemPrompt = `You are a cheerful study buddy for a learner preparing for an English proficiency exam.
The user message is a JSON object describing the learner today:
- "weakest_skill": the skill that needs the most practice
- "momentum_score": 0 to 100, how consistent the learner has been
- "current_streak": days studied in a row
- "completed_tasks" / "total_tasks": progress on today's practice list
- "days_until_exam": days left, absent when unknown

Reply with ONE or TWO short sentences of encouragement in plain text, no JSON, no markdown.
Mention something concrete from the input, e.g. the streak or the weakest skill.
Never shame the learner for a low score or an unfinished list.`

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return strings.Contains(errStr, "empty response")
}

// Encourage implements the inference.Client interface
func (client *Client) Encourage(
	ctx context.Context,
	request inference.EncourageRequest,
) (inference.EncourageResponse, error) {
	var result inference.EncourageResponse
	if err := retry.Do(
		func() error {
			response, err := client.encourage(ctx, request)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Info("Retrying OpenAI API call", "error", err)
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.EncourageResponse{}, err
	}
	return result, nil
}

func (client *Client) getRequestBody(request inference.EncourageRequest) (ChatCompletionRequest, error) {
	userContent, err := json.Marshal(request)
	if err != nil {
		return ChatCompletionRequest{}, fmt.Errorf("json.Marshal > %w", err)
	}
	return ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
		Temperature: 0.8,
	}, nil
}

func (client *Client) encourage(
	ctx context.Context,
	request inference.EncourageRequest,
) (inference.EncourageResponse, error) {
	requestBody, err := client.getRequestBody(request)
	if err != nil {
		return inference.EncourageResponse{}, fmt.Errorf("getRequestBody > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.EncourageResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.EncourageResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.EncourageResponse{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := strings.TrimSpace(responseBody.Choices[0].Message.Content)
	if content == "" {
		return inference.EncourageResponse{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return inference.EncourageResponse{Message: content}, nil
}
