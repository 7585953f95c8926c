// Package inference defines the study buddy that answers a wave with an encouragement message.
package inference

import (
	"context"
	"log/slog"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	Encourage(ctx context.Context, request EncourageRequest) (EncourageResponse, error)
}

// EncourageRequest describes the learner's situation today
type EncourageRequest struct {
	WeakestSkill   string `json:"weakest_skill"`
	MomentumScore  int    `json:"momentum_score"`
	CurrentStreak  int    `json:"current_streak"`
	CompletedTasks int    `json:"completed_tasks"`
	TotalTasks     int    `json:"total_tasks"`
	// nil when the exam date is unknown
	DaysUntilExam *int `json:"days_until_exam,omitempty"`
}

type EncourageResponse struct {
	Message string `json:"message"`
}

const (
	DefaultMaxRetryAttempts = 3

	// FallbackMessage is the buddy's answer when no model is available.
	FallbackMessage = "Buddy waved back! Keep pushing!"
)

// OfflineClient always answers with FallbackMessage.
type OfflineClient struct{}

func (OfflineClient) Encourage(_ context.Context, _ EncourageRequest) (EncourageResponse, error) {
	return EncourageResponse{Message: FallbackMessage}, nil
}

// Encourage asks client for a message and falls back to FallbackMessage on errors or an empty answer.
func Encourage(ctx context.Context, client Client, request EncourageRequest) string {
	if client == nil {
		return FallbackMessage
	}
	response, err := client.Encourage(ctx, request)
	if err != nil {
		slog.Default().Warn("study buddy is unavailable, use the fallback message",
			"error", err,
		)
		return FallbackMessage
	}
	if response.Message == "" {
		return FallbackMessage
	}
	return response.Message
}
