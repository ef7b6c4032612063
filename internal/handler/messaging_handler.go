package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/usecase"
)

// MessagingHandler voice messages and message translation.
type MessagingHandler struct {
	messaging *usecase.CommunityMessagingUsecase
}

func NewMessagingHandler(messaging *usecase.CommunityMessagingUsecase) *MessagingHandler {
	return &MessagingHandler{
		messaging: messaging,
	}
}

// SendVoiceMessage uploads an audio blob and records the message.
// POST /messages/voice (multipart)
func (h *MessagingHandler) SendVoiceMessage(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}

	conversationID := c.PostForm("conversation_id")
	targetUserID := c.PostForm("target_user_id")
	if conversationID == "" || targetUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "conversation_id and target_user_id are required",
		})
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration_seconds"), 64)

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "failed to read uploaded file",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	message := model.VoiceMessage{
		ConversationID: conversationID,
		TargetUserID:   targetUserID,
		Transcription:  c.PostForm("transcription"),
		DurationSecs:   duration,
		Dialect:        c.PostForm("dialect"),
	}

	contentType := fileHeader.Header.Get("Content-Type")
	created, err := h.messaging.SendVoiceMessage(c.Request.Context(), currentUserID(c), message, fileHeader.Filename, contentType, file)
	if err != nil {
		serverError(c, "failed to send voice message", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// TranslateMessage translates a community message.
// POST /messages/translate
func (h *MessagingHandler) TranslateMessage(c *gin.Context) {
	var req model.TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.messaging.TranslateMessage(c.Request.Context(), req)
	if err != nil {
		serverError(c, "failed to translate message", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
