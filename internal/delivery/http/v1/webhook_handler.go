package v1

import (
	"net/http"

	"go-ringside-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct{}

// NewWebhookHandler registers the LINE platform callback route.
func NewWebhookHandler(public *gin.RouterGroup) {
	handler := &WebhookHandler{}
	public.POST("/line-webhook", handler.HandleLineWebhook)
}

type lineWebhookBody struct {
	Events []lineWebhookEvent `json:"events"`
}

type lineWebhookEvent struct {
	Type   string `json:"type"`
	Source struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

// HandleLineWebhook godoc
// @Summary      LINE Webhook Callback
// @Description  Receives LINE platform events and logs the sender ID for operational lookup.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /line-webhook [post]
func (h *WebhookHandler) HandleLineWebhook(c *gin.Context) {
	var body lineWebhookBody
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Log.Error("LINE webhook parse failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook error"})
		return
	}

	// Log the sender's user ID so operators can look it up when setting
	// LINE_BOT_USER_ID.
	if len(body.Events) > 0 {
		event := body.Events[0]
		if event.Type == "message" && event.Source.UserID != "" {
			logger.Log.Info("LINE webhook message received",
				"userId", event.Source.UserID,
				"text", event.Message.Text,
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
