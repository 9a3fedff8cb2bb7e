package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trannm-ct/channel-chat/internal/identity"
	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/usecase"
	"github.com/trannm-ct/channel-chat/pkg/util"
)

type Controller interface {
	Health(c echo.Context) error
	ListChannels(c echo.Context) error
	SelectChannel(c echo.Context) error
	ChannelMessages(c echo.Context) error
	View(c echo.Context) error
	PostMessage(c echo.Context) error
	SetStorageMode(c echo.Context) error
	ToggleStorageMode(c echo.Context) error
	SeedRemote(c echo.Context) error
	Debug(c echo.Context) error
}

type controller struct {
	chatUsecase usecase.ChatUsecase
	view        *usecase.ChannelView
	alerter     usecase.Alerter
}

func NewController(chatUsecase usecase.ChatUsecase, view *usecase.ChannelView, alerter usecase.Alerter) Controller {
	return &controller{
		chatUsecase: chatUsecase,
		view:        view,
		alerter:     alerter,
	}
}

// messageDTO mirrors what the client renders per message; the date string
// is derived from the timestamp, never stored.
type messageDTO struct {
	Author    string `json:"author"`
	Channel   string `json:"channel"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
	ImageURI  string `json:"image_uri,omitempty"`
}

func toMessageDTO(m models.Message) messageDTO {
	return messageDTO{
		Author:    m.Author,
		Channel:   m.Channel,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Date:      m.Date.Format(time.RFC1123),
		ImageURI:  string(m.ImageURL),
	}
}

// syncIdentity feeds the request's signed-in user into the view so an
// identity change triggers a refresh.
func (h *controller) syncIdentity(c echo.Context) models.Identity {
	ctx := c.Request().Context()
	ident, _ := identity.FromContext(ctx)
	h.view.SetIdentity(ctx, ident)
	return ident
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "channel-chat",
	})
}

func (h *controller) ListChannels(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"channels": h.chatUsecase.Channels(),
		"selected": h.view.SelectedChannel(),
	})
}

type selectChannelRequest struct {
	Channel string `json:"channel" validate:"required"`
}

func (h *controller) SelectChannel(c echo.Context) error {
	var req selectChannelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.syncIdentity(c)
	if err := h.view.SelectChannel(c.Request().Context(), req.Channel); err != nil {
		if errors.Is(err, models.ErrUnknownChannel) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown channel")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"selected": req.Channel,
	})
}

func (h *controller) ChannelMessages(c echo.Context) error {
	channel := c.Param("channel")
	messages, err := h.chatUsecase.GetMessagesForChannel(c.Request().Context(), channel)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Newest first for display; the store keeps insertion order.
	return c.JSON(http.StatusOK, map[string]interface{}{
		"channel":  channel,
		"messages": util.ConvertList(util.Reversed(messages), toMessageDTO),
	})
}

func (h *controller) View(c echo.Context) error {
	ident := h.syncIdentity(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"identity":   ident,
		"channel":    h.view.SelectedChannel(),
		"use_remote": h.chatUsecase.UsingRemote(),
		"messages":   util.ConvertList(util.Reversed(h.view.Visible()), toMessageDTO),
	})
}

func (h *controller) PostMessage(c echo.Context) error {
	var draft models.ComposeDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	msg, err := h.chatUsecase.PostMessage(c.Request().Context(), draft)
	switch {
	case errors.Is(err, models.ErrNotSignedIn):
		return echo.NewHTTPError(http.StatusUnauthorized, "no user is signed in")
	case errors.Is(err, models.ErrNotVerified):
		return echo.NewHTTPError(http.StatusForbidden, "signed-in user is not verified")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, toMessageDTO(*msg))
}

type storageModeRequest struct {
	UseRemote *bool `json:"use_remote" validate:"required"`
}

func (h *controller) SetStorageMode(c echo.Context) error {
	var req storageModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.chatUsecase.SetStorageMode(c.Request().Context(), util.Val(req.UseRemote))
	return c.JSON(http.StatusOK, map[string]bool{
		"use_remote": h.chatUsecase.UsingRemote(),
	})
}

func (h *controller) ToggleStorageMode(c echo.Context) error {
	useRemote := h.chatUsecase.ToggleStorageMode(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]bool{
		"use_remote": useRemote,
	})
}

func (h *controller) SeedRemote(c echo.Context) error {
	if err := h.chatUsecase.SeedRemote(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "remote store populated with seed messages",
	})
}

func (h *controller) Debug(c echo.Context) error {
	ident := h.syncIdentity(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"channels":         h.chatUsecase.Channels(),
		"selected_channel": h.view.SelectedChannel(),
		"use_remote":       h.chatUsecase.UsingRemote(),
		"identity":         ident,
		"visible_messages": util.ConvertList(h.view.Visible(), toMessageDTO),
		"last_alert":       h.alerter.LastAlert(),
	})
}
