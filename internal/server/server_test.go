package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_inference "github.com/at-ishikawa/momentum/internal/mocks/inference"
	mock_store "github.com/at-ishikawa/momentum/internal/mocks/store"
	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/statistics"
	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tasks"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

var testToday = tracker.NewDate(2025, time.March, 10)

const validProfileBody = `{"target_score": 7, "exam_date": "2025-04-09", "daily_minutes": 60, "weakest_skill": "Listening"}`

func newTestServer(t *testing.T, buddy inference.Client) http.Handler {
	t.Helper()

	repo, err := store.NewFileRepository(filepath.Join(t.TempDir(), "study_data.json"))
	require.NoError(t, err)
	service := study.NewService(repo, tasks.NewDefaultGenerator())
	server := NewServer(service, buddy, func() tracker.Date { return testToday }, []string{"http://localhost:3000"})
	return server.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &v), recorder.Body.String())
	return v
}

func TestServer_BeforeOnboarding(t *testing.T) {
	handler := newTestServer(t, inference.OfflineClient{})

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/api/profile"},
		{method: http.MethodGet, path: "/api/dashboard"},
		{method: http.MethodPut, path: "/api/tasks/0", body: `{"completed": true}`},
		{method: http.MethodPost, path: "/api/finalize"},
		{method: http.MethodGet, path: "/api/badges"},
		{method: http.MethodPost, path: "/api/buddy"},
	}
	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := doRequest(t, handler, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, recorder.Code)
			got := decodeBody[errorResponse](t, recorder)
			assert.Equal(t, study.ErrNoProfile.Error(), got.Error)
		})
	}

	t.Run("history and stats are empty", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodGet, "/api/stats/weekly", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 0, decodeBody[statistics.WeeklyStats](t, recorder).WeeklyTasks)

		recorder = doRequest(t, handler, http.MethodGet, "/api/history", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, decodeBody[[]tracker.HistoryEntry](t, recorder))
	})
}

func TestServer_CreateProfile(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantDetails []string
	}{
		{
			name:       "valid profile",
			body:       validProfileBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "invalid fields",
			body:        `{"target_score": 10, "exam_date": "2025-04-09", "daily_minutes": 5, "weakest_skill": "Grammar"}`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: []string{"target_score must be 9 or less", "daily_minutes must be 15 or greater"},
		},
		{
			name:        "exam date in the past",
			body:        `{"target_score": 7, "exam_date": "2025-03-09", "daily_minutes": 60, "weakest_skill": "Reading"}`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: []string{"exam_date must be today (2025-03-10) or later"},
		},
		{
			name:       "malformed JSON",
			body:       `{"target_score": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"target_score": 7, "nickname": "scholar"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, inference.OfflineClient{})

			recorder := doRequest(t, handler, http.MethodPost, "/api/profile", tt.body)
			require.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
			if tt.wantStatus != http.StatusCreated {
				got := decodeBody[errorResponse](t, recorder)
				assert.NotEmpty(t, got.Error)
				for _, want := range tt.wantDetails {
					assert.Contains(t, got.Details, want)
				}
				return
			}

			profile := decodeBody[tracker.Profile](t, recorder)
			assert.Equal(t, "2025-04-09", profile.ExamDate)
			assert.Equal(t, tracker.SkillListening, profile.WeakestSkill)
			assert.Equal(t, "2025-03-10", profile.LastCheckIn)
			assert.Equal(t, 1, profile.SkipsLeft)

			recorder = doRequest(t, handler, http.MethodPost, "/api/profile", tt.body)
			assert.Equal(t, http.StatusConflict, recorder.Code)
		})
	}
}

func TestServer_StudyDay(t *testing.T) {
	handler := newTestServer(t, inference.OfflineClient{})
	require.Equal(t, http.StatusCreated, doRequest(t, handler, http.MethodPost, "/api/profile", validProfileBody).Code)

	recorder := doRequest(t, handler, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	dashboard := decodeBody[study.Dashboard](t, recorder)
	require.Len(t, dashboard.Tasks, 3)
	assert.Equal(t, tracker.SkillListening, dashboard.Tasks[0].Skill)
	require.NotNil(t, dashboard.DaysUntilExam)
	assert.Equal(t, 30, *dashboard.DaysUntilExam)
	assert.False(t, dashboard.FinalizedToday)

	t.Run("update tasks", func(t *testing.T) {
		tests := []struct {
			name       string
			path       string
			body       string
			wantStatus int
		}{
			{name: "complete the first task", path: "/api/tasks/0", body: `{"completed": true}`, wantStatus: http.StatusOK},
			{name: "index out of range", path: "/api/tasks/3", body: `{"completed": true}`, wantStatus: http.StatusBadRequest},
			{name: "negative index", path: "/api/tasks/-1", body: `{"completed": true}`, wantStatus: http.StatusBadRequest},
			{name: "index is not a number", path: "/api/tasks/first", body: `{"completed": true}`, wantStatus: http.StatusBadRequest},
			{name: "missing completed", path: "/api/tasks/1", body: `{}`, wantStatus: http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				recorder := doRequest(t, handler, http.MethodPut, tt.path, tt.body)
				assert.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
			})
		}

		recorder := doRequest(t, handler, http.MethodGet, "/api/dashboard", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		dashboard := decodeBody[study.Dashboard](t, recorder)
		assert.True(t, dashboard.Tasks[0].Completed)
		assert.False(t, dashboard.Tasks[1].Completed)
		assert.False(t, dashboard.Tasks[2].Completed)
	})

	t.Run("finalize", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodPost, "/api/finalize", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		entry := decodeBody[tracker.HistoryEntry](t, recorder)
		assert.Equal(t, "2025-03-10", entry.Date)
		assert.Equal(t, 1, entry.CompletedCount)
		assert.Equal(t, 3, entry.TotalCount)
		assert.Equal(t, 5, entry.MomentumGained)
		assert.Equal(t, 1, entry.NewStreak)
		assert.Equal(t, map[tracker.Skill]int{tracker.SkillListening: 1}, entry.SkillsImproved)
	})

	t.Run("statistics", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodGet, "/api/stats/weekly", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		weekly := decodeBody[statistics.WeeklyStats](t, recorder)
		assert.Equal(t, 1, weekly.WeeklyTasks)
		assert.Equal(t, 1, weekly.ActiveDays)

		recorder = doRequest(t, handler, http.MethodGet, "/api/stats/progress", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		progress := decodeBody[[]statistics.SkillProgressPoint](t, recorder)
		require.Len(t, progress, 1)
		assert.Equal(t, 1, progress[0].Totals[tracker.SkillListening])

		recorder = doRequest(t, handler, http.MethodGet, "/api/history", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Len(t, decodeBody[[]tracker.HistoryEntry](t, recorder), 1)

		recorder = doRequest(t, handler, http.MethodGet, "/api/dashboard", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		dashboard := decodeBody[study.Dashboard](t, recorder)
		assert.True(t, dashboard.FinalizedToday)
		assert.Equal(t, 5, dashboard.Profile.MomentumScore)
	})

	t.Run("badges", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodGet, "/api/badges", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		badges := decodeBody[[]study.BadgeStatus](t, recorder)
		require.Len(t, badges, len(tracker.BadgeCatalog()))
		for _, badge := range badges {
			assert.False(t, badge.Unlocked, badge.ID)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.Contains(t, body, "momentum_finalized_days_total 1")
		assert.Contains(t, body, "momentum_score 5")
		assert.Contains(t, body, "momentum_current_streak_days 1")
		assert.Contains(t, body, `momentum_http_requests_total{method="PUT",route="/api/tasks/{index}",status="400"} 4`)
	})
}

func TestServer_Buddy(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*mock_inference.MockClient)
		wantMessage string
	}{
		{
			name: "message from the model",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().
					Encourage(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, request inference.EncourageRequest) (inference.EncourageResponse, error) {
						assert.Equal(t, "Listening", request.WeakestSkill)
						assert.Equal(t, 3, request.TotalTasks)
						require.NotNil(t, request.DaysUntilExam)
						assert.Equal(t, 30, *request.DaysUntilExam)
						return inference.EncourageResponse{Message: "Keep listening!"}, nil
					})
			},
			wantMessage: "Keep listening!",
		},
		{
			name: "fallback when the model fails",
			setupMock: func(client *mock_inference.MockClient) {
				client.EXPECT().
					Encourage(gomock.Any(), gomock.Any()).
					Return(inference.EncourageResponse{}, errors.New("response error 500"))
			},
			wantMessage: inference.FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			tt.setupMock(client)

			handler := newTestServer(t, client)
			require.Equal(t, http.StatusCreated, doRequest(t, handler, http.MethodPost, "/api/profile", validProfileBody).Code)

			recorder := doRequest(t, handler, http.MethodPost, "/api/buddy", "")
			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.wantMessage, decodeBody[buddyResponse](t, recorder).Message)
		})
	}
}

func TestServer_InternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockRepository(ctrl)
	repo.EXPECT().LoadProfile(gomock.Any()).Return(nil, errors.New("database is locked"))

	server := NewServer(study.NewService(repo, tasks.NewDefaultGenerator()), nil, func() tracker.Date { return testToday }, nil)
	recorder := doRequest(t, server.Routes(), http.MethodGet, "/api/profile", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "internal server error", decodeBody[errorResponse](t, recorder).Error)
}

func TestServer_Handler(t *testing.T) {
	handler := newTestServer(t, inference.OfflineClient{})

	t.Run("healthz", func(t *testing.T) {
		recorder := doRequest(t, handler, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "OK", recorder.Body.String())
	})

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", wantOrigin: "http://localhost:3000"},
		{name: "other origin", origin: "http://example.com", wantOrigin: ""},
	}
	for _, tt := range tests {
		t.Run("preflight from "+tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/tasks/0", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantOrigin, recorder.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
