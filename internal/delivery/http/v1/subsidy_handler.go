package v1

import (
	"net/http"
	"time"

	"go-ringside-backend/config"
	"go-ringside-backend/internal/delivery/http/middleware"
	"go-ringside-backend/internal/delivery/http/response"
	"go-ringside-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const msgSubsidyAccepted = "補助金申請サポートのご依頼を受付ました。専門スタッフより1営業日以内にご連絡いたします。"

type SubsidySupportHandler struct {
	submissionUC domain.SubmissionUsecase
}

// NewSubsidySupportHandler registers the subsidy-support form route. This
// form carries its fields directly, without a type discriminant, and has
// the strictest submission policy.
func NewSubsidySupportHandler(public *gin.RouterGroup, submissionUC domain.SubmissionUsecase, cfg *config.Config) {
	handler := &SubsidySupportHandler{
		submissionUC: submissionUC,
	}

	limiter := middleware.FormRateLimit(middleware.RateLimitConfig{
		FormType: "subsidy-support",
		Limit:    cfg.RateLimitSubsidyThreshold,
		Window:   time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
	})

	public.POST("/subsidy-support", limiter, handler.SubmitSubsidySupport)
}

// SubmitSubsidySupport godoc
// @Summary      Submit Subsidy Support Form
// @Description  Request subsidy application support for a ring purchase.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /subsidy-support [post]
func (h *SubsidySupportHandler) SubmitSubsidySupport(c *gin.Context) {
	body, appErr := parseJSONBody(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	receipt, err := h.submissionUC.SubmitSubsidySupport(c.Request.Context(), body)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, msgSubsidyAccepted, receipt)
}
