package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-ringside-backend/internal/domain"
	"go-ringside-backend/pkg/apperror"
	"go-ringside-backend/pkg/logger"
	"go-ringside-backend/pkg/sanitize"
	"go-ringside-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Japanese client-facing messages, matching the lead forms.
const (
	msgContactShape    = "お問い合わせフォームのデータ形式が正しくありません。"
	msgContactInvalid  = "お問い合わせフォームのバリデーションに失敗しました。"
	msgEstimateShape   = "見積もりフォームのデータ形式が正しくありません。"
	msgEstimateInvalid = "見積もりフォームのバリデーションに失敗しました。"
	msgSubsidyShape    = "補助金申請サポートフォームのデータ形式が正しくありません。"
	msgSubsidyInvalid  = "補助金申請サポートフォームのバリデーションに失敗しました。"
	msgUnknownFormType = "無効なフォームタイプです。"
)

type submissionUsecase struct {
	line          domain.PushNotifier
	email         domain.FallbackSender
	validate      *validator.Validate
	notifyTimeout time.Duration
}

// NewSubmissionUsecase wires the lead-submission pipeline: sanitize the raw
// payload, collect every missing required field, run the field-level
// validation, then deliver the notification (LINE first, email fallback).
func NewSubmissionUsecase(line domain.PushNotifier, email domain.FallbackSender, validate *validator.Validate, notifyTimeout time.Duration) domain.SubmissionUsecase {
	return &submissionUsecase{
		line:          line,
		email:         email,
		validate:      validate,
		notifyTimeout: notifyTimeout,
	}
}

// Submit runs the pipeline for the contact endpoint's discriminated payload.
func (uc *submissionUsecase) Submit(ctx context.Context, kind domain.FormType, payload map[string]interface{}) (*domain.SubmissionReceipt, error) {
	sanitized := sanitize.SanitizeFormData(payload)

	var sub domain.Submission
	switch kind {
	case domain.FormContact:
		if missing := validation.MissingContactFields(sanitized); len(missing) > 0 {
			return nil, apperror.BadRequestWithDetails(msgContactShape, map[string]interface{}{
				"formType":      kind,
				"missingFields": missing,
			})
		}
		req := &domain.ContactRequest{}
		if err := uc.decodeAndValidate(sanitized, req, msgContactInvalid); err != nil {
			return nil, err
		}
		sub = req

	case domain.FormEstimate:
		if missing := validation.MissingEstimateFields(sanitized); len(missing) > 0 {
			return nil, apperror.BadRequestWithDetails(msgEstimateShape, map[string]interface{}{
				"formType":      kind,
				"missingFields": missing,
			})
		}
		req := &domain.EstimateRequest{}
		if err := uc.decodeAndValidate(sanitized, req, msgEstimateInvalid); err != nil {
			return nil, err
		}
		sub = req

	default:
		return nil, apperror.BadRequestWithDetails(msgUnknownFormType, map[string]interface{}{
			"receivedType": string(kind),
		})
	}

	result := uc.notifyWithFallback(sub)
	logger.Log.Info("submission processed",
		"form", kind,
		"notification", string(result),
	)

	return &domain.SubmissionReceipt{
		Type:      kind,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// SubmitSubsidySupport runs the pipeline for the subsidy-support payload.
func (uc *submissionUsecase) SubmitSubsidySupport(ctx context.Context, payload map[string]interface{}) (*domain.SubsidyReceipt, error) {
	sanitized := sanitize.SanitizeFormData(payload)

	if missing := validation.MissingSubsidyFields(sanitized); len(missing) > 0 {
		return nil, apperror.BadRequestWithDetails(msgSubsidyShape, map[string]interface{}{
			"missingFields": missing,
		})
	}

	req := &domain.SubsidySupportRequest{}
	if err := uc.decodeAndValidate(sanitized, req, msgSubsidyInvalid); err != nil {
		return nil, err
	}

	result := uc.notifyWithFallback(req)
	logger.Log.Info("submission processed",
		"form", domain.FormSubsidySupport,
		"notification", string(result),
	)

	now := time.Now()
	return &domain.SubsidyReceipt{
		ApplicationID: fmt.Sprintf("subsidy-%d", now.UnixMilli()),
		Timestamp:     now.UTC().Format(time.RFC3339),
		CompanyType:   req.CompanyType,
		BusinessType:  req.BusinessType,
	}, nil
}

// decodeAndValidate narrows the sanitized map into the typed variant, then
// runs the field-level check, collecting every failure.
func (uc *submissionUsecase) decodeAndValidate(sanitized map[string]interface{}, dst domain.Submission, invalidMsg string) error {
	raw, err := json.Marshal(sanitized)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A type mismatch (a string where a boolean belongs) is a schema
		// failure, same as a constraint violation.
		return apperror.BadRequestWithDetails(invalidMsg, map[string]interface{}{
			"validationErrors": []validation.FieldError{{Message: err.Error()}},
		})
	}

	if err := uc.validate.Struct(dst); err != nil {
		return apperror.BadRequestWithDetails(invalidMsg, map[string]interface{}{
			"validationErrors": validation.FormatValidationErrors(err),
		})
	}
	return nil
}

// notifyWithFallback attempts the primary channel and falls back to email on
// misconfiguration or delivery failure. Outcomes are logged, never surfaced:
// a notification outage must not turn into a form-submission failure.
func (uc *submissionUsecase) notifyWithFallback(sub domain.Submission) domain.NotificationResult {
	if uc.line.IsConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), uc.notifyTimeout)
		err := uc.line.Push(ctx, sub)
		cancel()
		if err == nil {
			return domain.NotifiedPrimary
		}
		logger.Log.Error("LINE push failed, trying email fallback", "form", sub.FormType(), "error", err)
	} else {
		logger.Log.Warn("LINE channel not configured, trying email fallback", "form", sub.FormType())
	}

	if !uc.email.IsConfigured() {
		logger.Log.Warn("fallback email channel not configured, notification dropped", "form", sub.FormType())
		return domain.NotifyFailed
	}

	ctx, cancel := context.WithTimeout(context.Background(), uc.notifyTimeout)
	defer cancel()
	if err := uc.email.Send(ctx, sub); err != nil {
		logger.Log.Error("fallback email send failed, notification dropped", "form", sub.FormType(), "error", err)
		return domain.NotifyFailed
	}
	return domain.NotifiedFallback
}
