package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/message-board/internal/models"
	"github.com/message-board/internal/service"
	"github.com/message-board/internal/validation"
	"github.com/rs/zerolog"
)

// Fixed client-facing errors
const (
	errInvalidCSRF      = "Invalid CSRF token"
	errMessageIDMissing = "Message ID is required"
	errUnknownAction    = "Unknown action"
	errCreateFailed     = "Failed to create comment"
)

const actionCreateComment = "create_comment"

// BoardHandler serves the board page and its form actions
type BoardHandler struct {
	services *service.Services
	csrf     CSRFProtector
	renderer PageRenderer
	log      zerolog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(services *service.Services, csrf CSRFProtector, renderer PageRenderer, log zerolog.Logger) *BoardHandler {
	return &BoardHandler{
		services: services,
		csrf:     csrf,
		renderer: renderer,
		log:      log.With().Str("handler", "board").Logger(),
	}
}

// Handle dispatches on method: POST runs an action, anything else renders the page
func (h *BoardHandler) Handle(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		h.handleAction(c)
		return
	}
	h.renderPage(c)
}

// RejectCSRF answers a request that failed the CSRF check
func (h *BoardHandler) RejectCSRF(c *gin.Context) {
	respondError(c, errInvalidCSRF)
}

// handleAction handles POST /
// The CSRF token has already been checked. Every outcome is a JSON
// envelope and ends the request.
func (h *BoardHandler) handleAction(c *gin.Context) {
	switch c.PostForm("action") {
	case actionCreateComment:
		h.createComment(c)
	default:
		respondError(c, errUnknownAction)
	}
}

func (h *BoardHandler) createComment(c *gin.Context) {
	messageID, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("message_id")), 10, 64)
	if err != nil || messageID <= 0 {
		respondError(c, errMessageIDMissing)
		return
	}

	comment, err := h.services.Board.CreateComment(
		c.Request.Context(), messageID, c.PostForm("nickname"), c.PostForm("body"),
	)
	if err != nil {
		respondError(c, h.clientMessage(err, messageID))
		return
	}

	h.log.Info().
		Int64("comment_id", comment.ID).
		Int64("message_id", comment.MessageID).
		Msg("Comment created")

	c.AbortWithStatusJSON(http.StatusOK, models.CommentEnvelope{OK: true, Comment: comment})
}

// clientMessage picks the text shown to the client for a failed create.
// Store failures share the 400 status with validation failures.
func (h *BoardHandler) clientMessage(err error, messageID int64) string {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	var storeErr *service.StoreError
	if errors.As(err, &storeErr) {
		h.log.Error().
			Err(storeErr.Err).
			Str("op", storeErr.Op).
			Int64("message_id", messageID).
			Msg("Failed to create comment")
		return storeErr.Message
	}

	h.log.Error().Err(err).Int64("message_id", messageID).Msg("Unexpected error creating comment")
	return errCreateFailed
}

// renderPage handles GET /
// Store failures here are fatal to the request; no partial page is written.
func (h *BoardHandler) renderPage(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.services.Board.ListMessages(ctx)
	if err != nil {
		h.failPage(c, err, "Failed to list messages")
		return
	}

	comments, err := h.services.Board.ListCommentsFor(ctx, models.MessageIDs(messages))
	if err != nil {
		h.failPage(c, err, "Failed to list comments")
		return
	}

	token, err := h.csrf.Token(c)
	if err != nil {
		h.failPage(c, err, "Failed to issue CSRF token")
		return
	}

	var buf bytes.Buffer
	page := &models.Page{Messages: messages, Comments: comments, CSRFToken: token}
	if err := h.renderer.Render(&buf, page); err != nil {
		h.failPage(c, err, "Failed to render page")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *BoardHandler) failPage(c *gin.Context, err error, msg string) {
	event := h.log.Error().Err(err)
	var storeErr *service.StoreError
	if errors.As(err, &storeErr) {
		event = event.Str("op", storeErr.Op).AnErr("cause", storeErr.Err)
	}
	event.Msg(msg)

	c.Abort()
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func respondError(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.CommentEnvelope{OK: false, Error: msg})
}
