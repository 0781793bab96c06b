package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"go-ringside-backend/config"
	v1 "go-ringside-backend/internal/delivery/http/v1"
	"go-ringside-backend/internal/usecase"
	"go-ringside-backend/pkg/email"
	"go-ringside-backend/pkg/notify"
	"go-ringside-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                      "8080",
		AppEnv:                    "development",
		FrontendURL:               "http://localhost:3000",
		EmailService:              "smtp",
		ToEmail:                   "ops@example.com",
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 3,
		RateLimitSubsidyThreshold: 2,
		NotifyTimeoutSeconds:      1,
	}
}

// newTestRouter builds the full stack with both notification channels left
// unconfigured, so delivery degrades to a logged no-op and no network calls
// are made.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	uc := usecase.NewSubmissionUsecase(
		notify.NewLineService(cfg),
		email.NewEmailService(cfg),
		validation.NewValidator(),
		0,
	)
	return v1.NewRouter(v1.RouterDeps{
		SubmissionUC: uc,
		Config:       cfg,
	})
}

func postJSON(router *gin.Engine, path string, payload interface{}, clientIP string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if clientIP != "" {
		req.Header.Set("X-Forwarded-For", clientIP)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func contactPayload() map[string]interface{} {
	return map[string]interface{}{
		"type":          "contact",
		"name":          "山田太郎",
		"phone":         "0312345678",
		"subject":       "相談",
		"message":       "リングについて相談したいです",
		"contactMethod": "phone",
	}
}

func subsidyPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":                 "山田太郎",
		"email":                "taro@example.com",
		"phone":                "0312345678",
		"company":              "株式会社サンプル",
		"companyType":          "sme",
		"businessType":         "sports",
		"interestedProduct":    "undecided",
		"expectedInstallation": "within_6m",
		"preferredContact":     "phone",
	}
}

func TestSubmitContactEndToEnd(t *testing.T) {
	router := newTestRouter()

	w := postJSON(router, "/api/contact", contactPayload(), "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["request_id"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "contact", data["type"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestSubmitEstimateEndToEnd(t *testing.T) {
	router := newTestRouter()

	payload := map[string]interface{}{
		"type":          "estimate",
		"name":          "佐藤次郎",
		"phone":         "0451234567",
		"ringType":      "standard",
		"ringSize":      "5x5",
		"budget":        "under_100",
		"usage":         "training",
		"contactMethod": "line",
	}

	w := postJSON(router, "/api/contact", payload, "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "estimate", data["type"])
}

func TestSubmitContactRejectsBadInput(t *testing.T) {
	router := newTestRouter()

	t.Run("Should reject an empty body", func(t *testing.T) {
		w := postJSON(router, "/api/contact", nil, "203.0.113.8")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	})

	t.Run("Should reject an unknown type discriminant", func(t *testing.T) {
		payload := contactPayload()
		payload["type"] = "order"

		w := postJSON(router, "/api/contact", payload, "203.0.113.8")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should itemize missing fields in development mode", func(t *testing.T) {
		payload := contactPayload()
		delete(payload, "subject")

		w := postJSON(router, "/api/contact", payload, "203.0.113.9")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		body := decodeBody(t, w)
		details := body["details"].(map[string]interface{})
		assert.Contains(t, details["missingFields"], "subject")
	})
}

func TestContactRateLimitEndToEnd(t *testing.T) {
	router := newTestRouter()

	for i := 0; i < 3; i++ {
		w := postJSON(router, "/api/contact", contactPayload(), "198.51.100.1")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := postJSON(router, "/api/contact", contactPayload(), "198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	assert.NoError(t, err)
	assert.Greater(t, retryAfter, 0)

	// A different client address keeps its own budget.
	w = postJSON(router, "/api/contact", contactPayload(), "198.51.100.2")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitSubsidySupportEndToEnd(t *testing.T) {
	router := newTestRouter()

	t.Run("Should return an application receipt", func(t *testing.T) {
		w := postJSON(router, "/api/subsidy-support", subsidyPayload(), "203.0.113.10")
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Contains(t, data["applicationId"], "subsidy-")
		assert.Equal(t, "sme", data["companyType"])
		assert.Equal(t, "sports", data["businessType"])
	})

	t.Run("Should itemize missing required keys", func(t *testing.T) {
		payload := subsidyPayload()
		delete(payload, "companyType")

		w := postJSON(router, "/api/subsidy-support", payload, "203.0.113.11")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		details := decodeBody(t, w)["details"].(map[string]interface{})
		assert.Contains(t, details["missingFields"], "companyType")
	})

	t.Run("Should enforce the stricter submission budget", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := postJSON(router, "/api/subsidy-support", subsidyPayload(), "198.51.100.3")
			assert.Equal(t, http.StatusOK, w.Code)
		}
		w := postJSON(router, "/api/subsidy-support", subsidyPayload(), "198.51.100.3")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestLineWebhookEndToEnd(t *testing.T) {
	router := newTestRouter()

	payload := map[string]interface{}{
		"events": []map[string]interface{}{
			{
				"type":    "message",
				"source":  map[string]interface{}{"userId": "U1234567890"},
				"message": map[string]interface{}{"type": "text", "text": "hello"},
			},
		},
	}

	w := postJSON(router, "/api/line-webhook", payload, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
}
