package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxChatMessageLength = 1000

// postChat answers a question from the coach. Always 200 with a reply once
// the message is valid: the coach falls back to canned answers when the
// model is unreachable.
// POST /api/chat. Body: { "message": "how much protein?" }.
func (h *Handler) postChat(c *gin.Context) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	msg := strings.TrimSpace(body.Message)
	if msg == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}
	if len(msg) > maxChatMessageLength {
		apiError(c, http.StatusBadRequest, "message is too long")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": h.coach.Reply(c.Request.Context(), msg)})
}
