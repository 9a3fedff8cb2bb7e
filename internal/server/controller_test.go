package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/memory"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
	"github.com/trannm-ct/channel-chat/internal/server/middleware"
	"github.com/trannm-ct/channel-chat/internal/usecase"
)

var testChannels = models.ChannelList{"Arts", "Crafts", "Food", "Gatherings", "Outdoors"}

type fakeChatUsecase struct {
	router  *messagestore.Router
	local   *memory.Store
	postErr error
	posted  []models.ComposeDraft
	seedErr error
	seeded  bool
}

func (f *fakeChatUsecase) Channels() models.ChannelList { return testChannels }

func (f *fakeChatUsecase) GetMessagesForChannel(ctx context.Context, channel string) ([]models.Message, error) {
	return f.router.GetMessagesForChannel(ctx, channel)
}

func (f *fakeChatUsecase) PostMessage(_ context.Context, draft models.ComposeDraft) (*models.Message, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	f.posted = append(f.posted, draft)
	msg := models.NewMessage("alice@example.com", "Food", draft.Content)
	return &msg, nil
}

func (f *fakeChatUsecase) SetStorageMode(_ context.Context, useRemote bool) { f.router.SetMode(useRemote) }
func (f *fakeChatUsecase) ToggleStorageMode(_ context.Context) bool         { return f.router.Toggle() }
func (f *fakeChatUsecase) UsingRemote() bool                                { return f.router.UseRemote() }

func (f *fakeChatUsecase) SeedRemote(context.Context) error {
	if f.seedErr != nil {
		return f.seedErr
	}
	f.seeded = true
	return nil
}

func (f *fakeChatUsecase) DeleteAttachment(context.Context, string) {}

func newTestServer(t *testing.T) (*echo.Echo, *fakeChatUsecase) {
	t.Helper()

	local := memory.New(models.SeedMessages()...)
	router := messagestore.NewRouter(local, memory.New(), false)
	notifier := usecase.NewNotifier()
	view := usecase.NewChannelView(testChannels, "Food", router, notifier)
	require.NoError(t, view.Refresh(context.Background()))

	uc := &fakeChatUsecase{router: router, local: local}
	handler := NewController(uc, view, usecase.NewAlerter())

	e := echo.New()
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = errorHandler()

	e.GET("/health", handler.Health)
	api := e.Group("/api/v1")
	api.GET("/channels", handler.ListChannels)
	api.PUT("/channels/selected", handler.SelectChannel)
	api.GET("/channels/:channel/messages", handler.ChannelMessages)
	api.GET("/view", handler.View)
	api.POST("/messages", handler.PostMessage)
	api.PUT("/storage-mode", handler.SetStorageMode)
	api.POST("/storage-mode/toggle", handler.ToggleStorageMode)
	api.POST("/admin/seed", handler.SeedRemote)
	api.GET("/debug", handler.Debug)

	return e, uc
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestListChannels(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/channels", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Channels []string `json:"channels"`
		Selected string   `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string(testChannels), resp.Channels)
	assert.Equal(t, "Food", resp.Selected)
}

func TestSelectChannel(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/channels/selected", `{"channel":"Arts"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/channels", "")
	assert.Contains(t, rec.Body.String(), `"selected":"Arts"`)
}

func TestSelectChannelRejectsUnknown(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPut, "/api/v1/channels/selected", `{"channel":"Gossip"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/v1/channels/selected", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChannelMessagesNewestFirst(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/channels/Food/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Channel  string `json:"channel"`
		Messages []struct {
			Content   string `json:"content"`
			Timestamp int64  `json:"timestamp"`
			Date      string `json:"date"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Food", resp.Channel)
	require.Len(t, resp.Messages, 2)
	assert.Greater(t, resp.Messages[0].Timestamp, resp.Messages[1].Timestamp)
	assert.NotEmpty(t, resp.Messages[0].Date)
}

func TestPostMessageErrorMapping(t *testing.T) {
	e, uc := newTestServer(t)

	uc.postErr = models.ErrNotSignedIn
	rec := doJSON(e, http.MethodPost, "/api/v1/messages", `{"content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	uc.postErr = models.ErrNotVerified
	rec = doJSON(e, http.MethodPost, "/api/v1/messages", `{"content":"hi"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	uc.postErr = nil
	rec = doJSON(e, http.MethodPost, "/api/v1/messages", `{"content":"hi"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, uc.posted, 1)
	assert.Equal(t, "hi", uc.posted[0].Content)
}

func TestStorageModeEndpoints(t *testing.T) {
	e, uc := newTestServer(t)
	assert.False(t, uc.UsingRemote())

	rec := doJSON(e, http.MethodPut, "/api/v1/storage-mode", `{"use_remote":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.UsingRemote())

	// Missing field is a validation error, not silently false.
	rec = doJSON(e, http.MethodPut, "/api/v1/storage-mode", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, uc.UsingRemote())

	rec = doJSON(e, http.MethodPost, "/api/v1/storage-mode/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"use_remote":false`)
	assert.False(t, uc.UsingRemote())
}

func TestSeedRemoteEndpoint(t *testing.T) {
	e, uc := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/admin/seed", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.seeded)
}

func TestDebugSnapshot(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/debug", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, key := range []string{"channels", "selected_channel", "use_remote", "identity", "visible_messages", "last_alert"} {
		assert.Contains(t, resp, key)
	}
}
