package validation_test

import (
	"testing"

	"go-ringside-backend/internal/domain"
	"go-ringside-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func TestMissingContactFields(t *testing.T) {
	t.Run("Should report every missing field, not just the first", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":          "山田太郎",
			"phone":         "0312345678",
			"contactMethod": "phone",
		}
		missing := validation.MissingContactFields(payload)
		assert.ElementsMatch(t, []string{"subject", "message"}, missing)
	})

	t.Run("Should treat empty strings as missing", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":          "山田太郎",
			"phone":         "",
			"subject":       "   ",
			"message":       "リングについて相談したいです",
			"contactMethod": "phone",
		}
		missing := validation.MissingContactFields(payload)
		assert.ElementsMatch(t, []string{"phone", "subject"}, missing)
	})

	t.Run("Should pass a complete payload", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":          "山田太郎",
			"phone":         "0312345678",
			"subject":       "相談",
			"message":       "リングについて相談したいです",
			"contactMethod": "phone",
		}
		assert.Empty(t, validation.MissingContactFields(payload))
	})
}

func TestMissingEstimateFields(t *testing.T) {
	payload := map[string]interface{}{
		"name":  "山田太郎",
		"phone": "0312345678",
	}
	missing := validation.MissingEstimateFields(payload)
	assert.ElementsMatch(t, []string{"ringType", "ringSize", "budget", "usage"}, missing)
}

func TestMissingSubsidyFields(t *testing.T) {
	t.Run("Should check key presence only", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":                 "山田太郎",
			"email":                "taro@example.com",
			"phone":                "0312345678",
			"company":              "株式会社サンプル",
			"companyType":          "", // present but empty passes the pre-check
			"businessType":         "sports",
			"interestedProduct":    "undecided",
			"expectedInstallation": "immediate",
		}
		missing := validation.MissingSubsidyFields(payload)
		assert.ElementsMatch(t, []string{"preferredContact"}, missing)
	})
}

func TestFieldLevelValidation(t *testing.T) {
	validate := validation.NewValidator()

	t.Run("Should reject a short message with the field's JSON name", func(t *testing.T) {
		req := &domain.ContactRequest{
			Name:          "山田太郎",
			Phone:         "0312345678",
			Subject:       "相談",
			Message:       "短い",
			ContactMethod: "phone",
		}
		err := validate.Struct(req)
		assert.Error(t, err)

		errs := validation.FormatValidationErrors(err)
		assert.Len(t, errs, 1)
		assert.Equal(t, "message", errs[0].Field)
		assert.Equal(t, "メッセージは10文字以上入力してください", errs[0].Message)
	})

	t.Run("Should enforce enum tokens exactly", func(t *testing.T) {
		req := &domain.EstimateRequest{
			Name:          "山田太郎",
			Phone:         "0312345678",
			RingType:      "Standard", // case-sensitive, no normalization
			RingSize:      "5x5",
			Budget:        "under_100",
			Usage:         "training",
			ContactMethod: "line",
		}
		err := validate.Struct(req)
		assert.Error(t, err)

		errs := validation.FormatValidationErrors(err)
		assert.Len(t, errs, 1)
		assert.Equal(t, "ringType", errs[0].Field)
		assert.Equal(t, "リングタイプを選択してください", errs[0].Message)
	})

	t.Run("Should validate an optional email only when present", func(t *testing.T) {
		req := &domain.ContactRequest{
			Name:          "山田太郎",
			Phone:         "0312345678",
			Subject:       "相談",
			Message:       "リングについて相談したいです",
			ContactMethod: "phone",
		}
		assert.NoError(t, validate.Struct(req))

		req.Email = "not-an-address"
		err := validate.Struct(req)
		assert.Error(t, err)
		errs := validation.FormatValidationErrors(err)
		assert.Equal(t, "email", errs[0].Field)
		assert.Equal(t, "有効なメールアドレスを入力してください", errs[0].Message)
	})

	t.Run("Should collect every failing field", func(t *testing.T) {
		req := &domain.SubsidySupportRequest{
			Name:                 "山田太郎",
			Email:                "taro@example.com",
			Phone:                "0312345678",
			Company:              "株式会社サンプル",
			CompanyType:          "conglomerate",
			BusinessType:         "sports",
			InterestedProduct:    "undecided",
			ExpectedInstallation: "someday",
			PreferredContact:     "phone",
		}
		err := validate.Struct(req)
		assert.Error(t, err)

		errs := validation.FormatValidationErrors(err)
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"companyType", "expectedInstallation"}, fields)
	})
}
