// Package email implements the fallback notification channel. The provider
// is selected by configuration: direct SMTP, or one of the transactional
// HTTP APIs (EmailJS, SendGrid, Resend).
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"go-ringside-backend/config"
	"go-ringside-backend/internal/domain"
)

const (
	ServiceSMTP     = "smtp"
	ServiceEmailJS  = "emailjs"
	ServiceSendGrid = "sendgrid"
	ServiceResend   = "resend"
)

// EmailService sends submission notifications to the shop's inbox.
type EmailService struct {
	service    string
	apiKey     string
	serviceID  string
	templateID string
	toEmail    string
	fromEmail  string

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string

	httpClient *http.Client
}

// NewEmailService creates the fallback email channel from config.
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		service:      cfg.EmailService,
		apiKey:       cfg.EmailAPIKey,
		serviceID:    cfg.EmailServiceID,
		templateID:   cfg.EmailTemplateID,
		toEmail:      cfg.ToEmail,
		fromEmail:    cfg.SMTPFromEmail,
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured checks whether the selected provider has its required settings.
func (s *EmailService) IsConfigured() bool {
	if s.toEmail == "" {
		return false
	}
	switch s.service {
	case ServiceSMTP:
		return s.smtpHost != "" && s.smtpUsername != "" && s.smtpPassword != ""
	case ServiceEmailJS:
		return s.apiKey != "" && s.serviceID != "" && s.templateID != ""
	case ServiceSendGrid, ServiceResend:
		return s.apiKey != ""
	}
	return false
}

// Send delivers a kind-specific notification mail via the configured provider.
func (s *EmailService) Send(ctx context.Context, sub domain.Submission) error {
	subject := buildSubject(sub)
	content := buildContent(sub)

	switch s.service {
	case ServiceSMTP:
		return s.sendWithSMTP(subject, content)
	case ServiceEmailJS:
		return s.sendWithEmailJS(ctx, subject, content)
	case ServiceSendGrid:
		return s.sendWithSendGrid(ctx, subject, content)
	case ServiceResend:
		return s.sendWithResend(ctx, subject, content)
	}
	return fmt.Errorf("email: unknown service %q", s.service)
}

func buildSubject(sub domain.Submission) string {
	name := submitterName(sub)
	switch sub.FormType() {
	case domain.FormContact:
		return fmt.Sprintf("【お問い合わせ】%s様より", name)
	case domain.FormEstimate:
		return fmt.Sprintf("【見積もり依頼】%s様より", name)
	default:
		return fmt.Sprintf("【補助金申請サポート】%s様より", name)
	}
}

func submitterName(sub domain.Submission) string {
	switch req := sub.(type) {
	case *domain.ContactRequest:
		return req.Name
	case *domain.EstimateRequest:
		return req.Name
	case *domain.SubsidySupportRequest:
		return req.Name
	}
	return ""
}

func buildContent(sub domain.Submission) string {
	timestamp := time.Now().Format("2006/01/02 15:04:05")

	switch req := sub.(type) {
	case *domain.ContactRequest:
		return fmt.Sprintf(`【お問い合わせフォーム】新しいお問い合わせが届きました

お名前: %s
メールアドレス: %s
電話番号: %s
希望連絡方法: %s
送信日時: %s

件名: %s
お問い合わせ内容:
%s

---
このメールはボクシングリング専門店のお問い合わせフォームから送信されました。
`, req.Name, req.Email, req.Phone, req.ContactMethod, timestamp, req.Subject, req.Message)

	case *domain.EstimateRequest:
		return fmt.Sprintf(`【見積もり依頼フォーム】新しい見積もり依頼が届きました

お名前: %s
メールアドレス: %s
電話番号: %s
希望連絡方法: %s
送信日時: %s

リングタイプ: %s
リングサイズ: %s
予算: %s
用途: %s
設置場所: %s
希望納期: %s
補助金希望: %s

ご要望・質問:
%s

---
このメールはボクシングリング専門店の見積もりフォームから送信されました。
`, req.Name, req.Email, req.Phone, req.ContactMethod, timestamp,
			req.RingType, req.RingSize, req.Budget, req.Usage,
			orUnspecified(req.Location), orUnspecified(req.DeliveryDate),
			orUnspecified(req.SubsidyInterest), orNone(req.Requirements))

	case *domain.SubsidySupportRequest:
		return fmt.Sprintf(`【補助金申請サポートフォーム】新しいご依頼が届きました

お名前: %s
メールアドレス: %s
電話番号: %s
会社・施設名: %s
希望連絡方法: %s
送信日時: %s

事業者区分: %s
業種: %s
導入予定商品: %s
導入希望時期: %s

ご相談内容:
%s

---
このメールはボクシングリング専門店の補助金申請サポートフォームから送信されました。
`, req.Name, req.Email, req.Phone, req.Company, req.PreferredContact, timestamp,
			req.CompanyType, req.BusinessType, req.InterestedProduct,
			req.ExpectedInstallation, orNone(req.Message))
	}

	return fmt.Sprintf("新しいフォーム送信 (%s) %s", sub.FormType(), timestamp)
}

func orUnspecified(s string) string {
	if s == "" {
		return "未指定"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "なし"
	}
	return s
}

// sendWithSMTP sends via a plain SMTP relay (Brevo and the like).
func (s *EmailService) sendWithSMTP(subject, content string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail, s.toEmail, subject, content,
	))

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("email: smtp send failed: %w", err)
	}
	return nil
}

func (s *EmailService) sendWithEmailJS(ctx context.Context, subject, content string) error {
	payload := map[string]interface{}{
		"service_id":  s.serviceID,
		"template_id": s.templateID,
		"user_id":     s.apiKey,
		"template_params": map[string]string{
			"to_email":  s.toEmail,
			"subject":   subject,
			"message":   content,
			"from_name": "ボクシングリング専門店",
		},
	}
	return s.postJSON(ctx, "https://api.emailjs.com/api/v1.0/email/send", "", payload)
}

func (s *EmailService) sendWithSendGrid(ctx context.Context, subject, content string) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{{
			"to":      []map[string]string{{"email": s.toEmail}},
			"subject": subject,
		}},
		"from": map[string]string{"email": s.fromEmail},
		"content": []map[string]string{{
			"type":  "text/plain",
			"value": content,
		}},
	}
	return s.postJSON(ctx, "https://api.sendgrid.com/v3/mail/send", s.apiKey, payload)
}

func (s *EmailService) sendWithResend(ctx context.Context, subject, content string) error {
	payload := map[string]interface{}{
		"from":    s.fromEmail,
		"to":      s.toEmail,
		"subject": subject,
		"text":    content,
	}
	return s.postJSON(ctx, "https://api.resend.com/emails", s.apiKey, payload)
}

func (s *EmailService) postJSON(ctx context.Context, endpoint, bearer string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("email: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("email: provider returned status %d", resp.StatusCode)
	}
	return nil
}
