// Package notify implements the primary notification channel: a LINE push
// message to the shop's operations account for every validated submission.
package notify

import (
	"context"
	"fmt"
	"time"

	"go-ringside-backend/config"
	"go-ringside-backend/internal/domain"
	"go-ringside-backend/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LineService pushes formatted submission messages to the configured
// LINE user. The channel counts as configured only when all three secrets
// (access token, channel secret, bot user ID) are present.
type LineService struct {
	client *linebot.Client
	userID string
}

// NewLineService builds the LINE channel from config. An unconfigured or
// failed setup yields a service whose IsConfigured reports false; the
// caller is expected to fall back to email.
func NewLineService(cfg *config.Config) *LineService {
	if cfg.LineChannelAccessToken == "" || cfg.LineChannelSecret == "" || cfg.LineBotUserID == "" {
		return &LineService{}
	}

	client, err := linebot.New(cfg.LineChannelSecret, cfg.LineChannelAccessToken)
	if err != nil {
		logger.Log.Error("LINE client setup failed", "error", err)
		return &LineService{}
	}

	return &LineService{
		client: client,
		userID: cfg.LineBotUserID,
	}
}

// IsConfigured reports whether all LINE channel secrets are present.
func (s *LineService) IsConfigured() bool {
	return s.client != nil && s.userID != ""
}

// Push delivers a kind-specific formatted message for the submission.
func (s *LineService) Push(ctx context.Context, sub domain.Submission) error {
	if !s.IsConfigured() {
		return fmt.Errorf("line: channel not configured")
	}

	text := FormatSubmissionMessage(sub)
	_, err := s.client.PushMessage(s.userID, linebot.NewTextMessage(text)).WithContext(ctx).Do()
	if err != nil {
		return fmt.Errorf("line: push message failed: %w", err)
	}
	return nil
}

const messageDivider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// FormatSubmissionMessage renders the operator-facing Japanese message for
// a submission.
func FormatSubmissionMessage(sub domain.Submission) string {
	timestamp := time.Now().In(jst()).Format("2006/01/02 15:04:05")

	switch req := sub.(type) {
	case *domain.ContactRequest:
		return fmt.Sprintf(`🔔 新しいお問い合わせ
%s

📝 お名前: %s
🏢 会社・施設: %s
📞 電話番号: %s
📧 メール: %s
🎯 件名: %s
📬 希望連絡方法: %s

💬 お問い合わせ内容:
%s

%s
🕐 受信日時: %s

💡 1営業日以内にご連絡をお願いします。`,
			messageDivider,
			req.Name, orUnset(req.Company), orUnset(req.Phone), orUnset(req.Email),
			orUnset(req.Subject), contactMethodText(req.ContactMethod),
			req.Message,
			messageDivider, timestamp)

	case *domain.EstimateRequest:
		return fmt.Sprintf(`📊 新しい見積もり依頼
%s

👤 お客様情報:
📝 お名前: %s
🏢 会社・施設: %s
📞 電話番号: %s
📧 メール: %s
📬 希望連絡方法: %s

🥊 商品情報:
🎯 リングタイプ: %s
📏 リングサイズ: %s
💰 予算: %s
🎪 用途: %s
🏛️ 補助金サポート: %s

📍 設置場所: %s
📅 希望納期: %s

💬 追加要望:
%s

%s
🕐 受信日時: %s

🎯 見積もり作成をお願いします！`,
			messageDivider,
			req.Name, orUnset(req.Company), orUnset(req.Phone), orUnset(req.Email),
			contactMethodText(req.ContactMethod),
			ringTypeText(req.RingType), ringSizeText(req.RingSize),
			budgetText(req.Budget), usageText(req.Usage),
			boolText(req.SubsidySupport, "希望する", "希望しない"),
			orUnset(req.Location), orUnset(req.DeliveryDate),
			orNone(req.Message),
			messageDivider, timestamp)

	case *domain.SubsidySupportRequest:
		return fmt.Sprintf(`🏛️ 新しい補助金申請サポート依頼
%s

📝 お名前: %s
🏢 会社・施設名: %s
📞 電話番号: %s
📧 メール: %s
📬 希望連絡方法: %s

🏭 事業者区分: %s
💼 業種: %s
🥊 導入予定商品: %s
📅 導入希望時期: %s

💬 ご相談内容:
%s

%s
🕐 受信日時: %s

💡 専門スタッフより1営業日以内にご連絡をお願いします。`,
			messageDivider,
			req.Name, req.Company, orUnset(req.Phone), req.Email,
			preferredContactText(req.PreferredContact),
			companyTypeText(req.CompanyType), businessTypeText(req.BusinessType),
			req.InterestedProduct, installationText(req.ExpectedInstallation),
			orNone(req.Message),
			messageDivider, timestamp)

	default:
		return fmt.Sprintf("新しいフォーム送信 (%s) %s", sub.FormType(), timestamp)
	}
}

func jst() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

func orUnset(s string) string {
	if s == "" {
		return "未入力"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "特になし"
	}
	return s
}

func boolText(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

func contactMethodText(method string) string {
	switch method {
	case "line":
		return "LINE"
	case "phone":
		return "電話"
	case "either":
		return "どちらでも可"
	default:
		return "未選択"
	}
}

func preferredContactText(method string) string {
	switch method {
	case "phone":
		return "電話"
	case "email":
		return "メール"
	case "either":
		return "どちらでも可"
	default:
		return "未選択"
	}
}

func ringTypeText(t string) string {
	switch t {
	case "standard":
		return "スタンダード"
	case "professional":
		return "プロフェッショナル"
	case "custom":
		return "カスタム"
	default:
		return t
	}
}

func ringSizeText(size string) string {
	switch size {
	case "5x5":
		return "5m×5m"
	case "6x6":
		return "6m×6m"
	case "7x7":
		return "7m×7m"
	case "custom":
		return "カスタムサイズ"
	default:
		return size
	}
}

func budgetText(budget string) string {
	switch budget {
	case "under_100":
		return "100万円未満"
	case "100_200":
		return "100-200万円"
	case "200_300":
		return "200-300万円"
	case "over_300":
		return "300万円以上"
	default:
		return budget
	}
}

func usageText(usage string) string {
	switch usage {
	case "training":
		return "トレーニング用"
	case "competition":
		return "試合用"
	case "gym":
		return "ジム用"
	case "school":
		return "学校用"
	default:
		return usage
	}
}

func companyTypeText(t string) string {
	switch t {
	case "sme":
		return "中小企業"
	case "individual":
		return "個人事業主"
	case "large":
		return "大企業"
	case "npo":
		return "NPO法人"
	case "public":
		return "公共団体"
	default:
		return t
	}
}

func businessTypeText(t string) string {
	switch t {
	case "sports":
		return "スポーツ関連"
	case "education":
		return "教育関連"
	case "manufacturing":
		return "製造業"
	case "service":
		return "サービス業"
	case "retail":
		return "小売業"
	case "healthcare":
		return "医療・福祉"
	case "other":
		return "その他"
	default:
		return t
	}
}

func installationText(t string) string {
	switch t {
	case "immediate":
		return "すぐに導入したい"
	case "within_6m":
		return "半年以内"
	case "within_1y":
		return "1年以内"
	case "over_1y":
		return "1年以上先"
	case "depends_on_subsidy":
		return "補助金次第"
	default:
		return t
	}
}
