package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-ringside-backend/config"
	"go-ringside-backend/internal/delivery/http/middleware"
	"go-ringside-backend/internal/delivery/http/response"
	"go-ringside-backend/internal/domain"
	"go-ringside-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	msgBadJSON        = "リクエストの形式が正しくありません。"
	msgInvalidRequest = "無効なリクエスト形式です。正しいフォーマットでデータを送信してください。"

	msgContactAccepted  = "お問い合わせを受付ました。1営業日以内にご連絡いたします。"
	msgEstimateAccepted = "見積もり依頼を受付ました。1営業日以内にご連絡いたします。"
)

type ContactHandler struct {
	submissionUC domain.SubmissionUsecase
}

// NewContactHandler registers the contact form route (public, no auth
// required). The rate limiter runs ahead of the handler so a limited caller
// never reaches parsing or validation.
func NewContactHandler(public *gin.RouterGroup, submissionUC domain.SubmissionUsecase, cfg *config.Config) {
	handler := &ContactHandler{
		submissionUC: submissionUC,
	}

	limiter := middleware.FormRateLimit(middleware.RateLimitConfig{
		FormType: "contact",
		Limit:    cfg.RateLimitContactThreshold,
		Window:   time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
	})

	public.POST("/contact", limiter, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact or Estimate Form
// @Description  Send an inquiry or ring estimate request. The body carries a type discriminant ("contact" or "estimate").
// @Tags         forms
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	body, appErr := parseJSONBody(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	typeVal, hasType := body["type"]
	typeStr, _ := typeVal.(string)
	kind, validKind := domain.ValidFormType(typeStr)
	if !validKind {
		c.Error(apperror.BadRequestWithDetails(msgInvalidRequest, map[string]interface{}{
			"receivedType": fmt.Sprintf("%T", typeVal),
			"hasType":      hasType,
		}))
		return
	}
	delete(body, "type")

	receipt, err := h.submissionUC.Submit(c.Request.Context(), kind, body)
	if err != nil {
		c.Error(err)
		return
	}

	msg := msgContactAccepted
	if kind == domain.FormEstimate {
		msg = msgEstimateAccepted
	}
	response.Success(c, http.StatusOK, msg, receipt)
}

// parseJSONBody reads and decodes the request body, distinguishing an empty
// body from malformed JSON for diagnostics.
func parseJSONBody(c *gin.Context) (map[string]interface{}, *apperror.AppError) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return nil, apperror.BadRequestWithDetails(msgBadJSON, map[string]interface{}{
			"errorType":     "json_parse",
			"originalError": "Empty request body",
		})
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, apperror.BadRequestWithDetails(msgBadJSON, map[string]interface{}{
			"errorType":     "json_parse",
			"originalError": "Invalid JSON format",
		})
	}
	return body, nil
}
