package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"core/internal/metrics"
	"core/internal/model"
	"core/internal/service"
	"core/internal/session"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles session and message HTTP requests
type ChatHandler struct {
	sessions     *session.Store
	conversation *service.ConversationService
	vocabulary   *service.VocabularyLoader
}

// NewChatHandler creates a new chat handler
func NewChatHandler(sessions *session.Store, conversation *service.ConversationService, vocabulary *service.VocabularyLoader) *ChatHandler {
	return &ChatHandler{
		sessions:     sessions,
		conversation: conversation,
		vocabulary:   vocabulary,
	}
}

// CreateSession handles POST /api/v1/sessions
func (h *ChatHandler) CreateSession(c *gin.Context) {
	vocab := h.vocabulary.Load(c.Request.Context())

	sess, err := h.sessions.Create(vocab)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Too many active sessions, try again later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session: " + err.Error()})
		return
	}
	metrics.SetActiveSessions(h.sessions.Len())

	c.JSON(http.StatusCreated, sess.Info())
}

// GetSession handles GET /api/v1/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Info())
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	metrics.SetActiveSessions(h.sessions.Len())

	c.JSON(http.StatusOK, gin.H{"status": "ended", "session_id": c.Param("id")})
}

// SendMessage handles POST /api/v1/sessions/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	result, err := h.conversation.ProcessTurn(c.Request.Context(), sess, req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request cancelled before the turn started"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SendMessageStream handles POST /api/v1/sessions/:id/messages/stream - SSE streaming turn
func (h *ChatHandler) SendMessageStream(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Create flusher for SSE
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}

	// Send initial event
	sendSSE(c, "start", map[string]any{"session_id": sess.ID, "message": req.Message})
	flusher.Flush()

	result, err := h.conversation.ProcessTurnStream(c.Request.Context(), sess, req, func(event string, data any) error {
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		sendSSE(c, event, data)
		flusher.Flush()
		return nil
	})
	if err != nil {
		// client went away
		return
	}

	// Send final result
	sendSSE(c, "result", result)
	flusher.Flush()

	// Send done event
	sendSSE(c, "done", nil)
	flusher.Flush()
}

func (h *ChatHandler) lookupSession(c *gin.Context) (*session.Session, bool) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return sess, true
}

func bindChatRequest(c *gin.Context) (*model.ChatRequest, bool) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return nil, false
	}
	if !validMetric(c, req.Metric) {
		return nil, false
	}
	return &req, true
}

// validMetric accepts an empty metric or one of price, demand, both
func validMetric(c *gin.Context, metric model.Metric) bool {
	if metric == "" {
		return true
	}
	if _, ok := model.ParseMetric(string(metric)); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metric. Must be one of: price, demand, both"})
		return false
	}
	return true
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
