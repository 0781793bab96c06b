package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldError is one itemized validation failure, reported by JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldLabels maps JSON field names to the Japanese labels used on the forms
var FieldLabels = map[string]string{
	"name":                 "名前",
	"email":                "メールアドレス",
	"phone":                "電話番号",
	"company":              "会社・施設名",
	"subject":              "件名",
	"message":              "メッセージ",
	"contactMethod":        "希望連絡方法",
	"ringType":             "リングタイプ",
	"ringSize":             "リングサイズ",
	"budget":               "予算",
	"usage":                "用途",
	"subsidySupport":       "補助金サポート",
	"location":             "設置場所",
	"deliveryDate":         "希望納期",
	"subsidyInterest":      "補助金への関心",
	"requirements":         "ご要望",
	"companyType":          "事業者区分",
	"businessType":         "業種",
	"annualRevenue":        "年商規模",
	"employeeCount":        "従業員数",
	"interestedProduct":    "導入予定商品",
	"expectedInstallation": "導入希望時期",
	"preferredContact":     "希望連絡方法",
}

// selectFields are closed enum choices; their messages say 選択 rather than 入力.
var selectFields = map[string]bool{
	"contactMethod":        true,
	"ringType":             true,
	"ringSize":             true,
	"budget":               true,
	"usage":                true,
	"companyType":          true,
	"businessType":         true,
	"annualRevenue":        true,
	"employeeCount":        true,
	"interestedProduct":    true,
	"expectedInstallation": true,
	"preferredContact":     true,
}

// FormatValidationErrors converts validator.ValidationErrors into itemized
// FieldError values with Japanese form messages.
func FormatValidationErrors(err error) []FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	errs := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, FieldError{
			Field:   e.Field(),
			Message: formatSingleError(e),
		})
	}
	return errs
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	label := getFieldLabel(field)

	switch e.Tag() {
	case "required":
		if selectFields[field] {
			return fmt.Sprintf("%sを選択してください", label)
		}
		return fmt.Sprintf("%sを入力してください", label)

	case "email":
		return "有効なメールアドレスを入力してください"

	case "min":
		return fmt.Sprintf("%sは%s文字以上入力してください", label, e.Param())

	case "max":
		return fmt.Sprintf("%sは%s文字以内で入力してください", label, e.Param())

	case "oneof":
		return fmt.Sprintf("%sを選択してください", label)

	default:
		return fmt.Sprintf("%sの形式が正しくありません", label)
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
