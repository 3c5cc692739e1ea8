package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	args := that.Called(ctx, sessionID)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (that *mockGameUseCase) Scores(ctx context.Context, playerID string) ([]entity.Best, error) {
	args := that.Called(ctx, playerID)
	scores, _ := args.Get(0).([]entity.Best)
	return scores, args.Error(1)
}

func newTestServer(t *testing.T) (*mockGameUseCase, *httptest.Server) {
	t.Helper()

	uGame := &mockGameUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(New(logger, uGame).Routes())
	t.Cleanup(func() {
		srv.Close()
		uGame.AssertExpectations(t)
	})

	return uGame, srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx // test
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestServer_Ping(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/ping")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestServer_ListGames(t *testing.T) {
	_, srv := newTestServer(t)

	// When: the catalog is requested
	resp, body := get(t, srv.URL+"/api/v1/games")

	// Then: every game is listed
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var games []entity.GameInfo
	require.NoError(t, json.Unmarshal(body, &games))
	assert.Equal(t, entity.Catalog, games)
}

func TestServer_GetSession(t *testing.T) {
	t.Run("Returns the stored session", func(t *testing.T) {
		uGame, srv := newTestServer(t)
		uGame.On("GetSession", mock.Anything, "s1").
			Return(&entity.Session{ID: "s1", Kind: entity.KindCheckers, Status: entity.StatusOngoing, State: json.RawMessage(`{}`)}, nil).
			Once()

		resp, body := get(t, srv.URL+"/api/v1/sessions/s1")

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var session entity.Session
		require.NoError(t, json.Unmarshal(body, &session))
		assert.Equal(t, entity.KindCheckers, session.Kind)
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		uGame, srv := newTestServer(t)
		uGame.On("GetSession", mock.Anything, "nope").Return(nil, apperror.ErrSessionNotFound).Once()

		resp, _ := get(t, srv.URL+"/api/v1/sessions/nope")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Storage failure is 500", func(t *testing.T) {
		uGame, srv := newTestServer(t)
		uGame.On("GetSession", mock.Anything, "s1").Return(nil, errors.New("redis down")).Once()

		resp, _ := get(t, srv.URL+"/api/v1/sessions/s1")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestServer_Scores(t *testing.T) {
	uGame, srv := newTestServer(t)
	best := []entity.Best{{Kind: entity.KindMemory, Best: 9, Played: 3}}
	uGame.On("Scores", mock.Anything, "p1").Return(best, nil).Once()

	resp, body := get(t, srv.URL+"/api/v1/players/p1/scores")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scores []entity.Best
	require.NoError(t, json.Unmarshal(body, &scores))
	assert.Equal(t, best, scores)
}
