package handler

import (
	"net/http"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// InterpretHandler serves the stateless interpretation endpoints
type InterpretHandler struct {
	conversation *service.ConversationService
	vocabulary   *service.VocabularyLoader
}

// NewInterpretHandler creates a new interpret handler
func NewInterpretHandler(conversation *service.ConversationService, vocabulary *service.VocabularyLoader) *InterpretHandler {
	return &InterpretHandler{
		conversation: conversation,
		vocabulary:   vocabulary,
	}
}

// Interpret handles POST /api/v1/interpret
func (h *InterpretHandler) Interpret(c *gin.Context) {
	var req model.InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	vocab := h.vocabulary.Load(c.Request.Context())
	c.JSON(http.StatusOK, h.conversation.Interpret(vocab, req.Text))
}

// Suggest handles POST /api/v1/suggestions
func (h *InterpretHandler) Suggest(c *gin.Context) {
	var req model.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !validMetric(c, req.Metric) {
		return
	}

	vocab := h.vocabulary.Load(c.Request.Context())
	c.JSON(http.StatusOK, h.conversation.Suggest(vocab, &req))
}

// Localities handles GET /api/v1/localities. ?refresh=true drops the cached list first.
func (h *InterpretHandler) Localities(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("refresh") == "true" {
		if err := h.vocabulary.Invalidate(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh localities: " + err.Error()})
			return
		}
	}

	vocab := h.vocabulary.Load(ctx)
	c.JSON(http.StatusOK, model.LocalitiesResponse{Localities: vocab})
}
