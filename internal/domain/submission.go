package domain

import "context"

// FormType discriminates which submission variant's rules apply.
type FormType string

const (
	FormContact        FormType = "contact"
	FormEstimate       FormType = "estimate"
	FormSubsidySupport FormType = "subsidy-support"
)

// ValidFormType reports whether s is a discriminant accepted by the
// contact endpoint.
func ValidFormType(s string) (FormType, bool) {
	switch FormType(s) {
	case FormContact, FormEstimate:
		return FormType(s), true
	}
	return "", false
}

// Submission is one validated form payload.
type Submission interface {
	FormType() FormType
}

// ContactRequest represents a general inquiry form submission
type ContactRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required"`
	Company       string `json:"company"`
	Subject       string `json:"subject" validate:"required"`
	Message       string `json:"message" validate:"required,min=10"`
	ContactMethod string `json:"contactMethod" validate:"required,oneof=line phone either"`
}

func (r *ContactRequest) FormType() FormType { return FormContact }

// EstimateRequest represents a ring estimate form submission
type EstimateRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"required"`
	Company         string `json:"company"`
	RingType        string `json:"ringType" validate:"required,oneof=standard professional custom"`
	RingSize        string `json:"ringSize" validate:"required,oneof=5x5 6x6 7x7 custom"`
	Budget          string `json:"budget" validate:"required,oneof=under_100 100_200 200_300 over_300"`
	Usage           string `json:"usage" validate:"required,oneof=training competition gym school"`
	SubsidySupport  bool   `json:"subsidySupport"`
	Message         string `json:"message"`
	ContactMethod   string `json:"contactMethod" validate:"required,oneof=line phone either"`
	Location        string `json:"location"`
	DeliveryDate    string `json:"deliveryDate"`
	SubsidyInterest string `json:"subsidyInterest"`
	Requirements    string `json:"requirements"`
}

func (r *EstimateRequest) FormType() FormType { return FormEstimate }

// SubsidySupportRequest represents a subsidy application support form submission
type SubsidySupportRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"required"`
	Company              string `json:"company" validate:"required"`
	CompanyType          string `json:"companyType" validate:"required,oneof=sme individual large npo public"`
	BusinessType         string `json:"businessType" validate:"required,oneof=sports education manufacturing service retail healthcare other"`
	AnnualRevenue        string `json:"annualRevenue" validate:"omitempty,oneof=under_10m 10m_50m 50m_100m 100m_500m over_500m"`
	EmployeeCount        string `json:"employeeCount" validate:"omitempty,oneof=1 2_10 11_50 51_100 over_100"`
	InterestedProduct    string `json:"interestedProduct" validate:"required,oneof=compact-basic training-standard standard-deluxe youth-special professional-tournament professional-championship custom-design custom-premium undecided"`
	ExpectedInstallation string `json:"expectedInstallation" validate:"required,oneof=immediate within_6m within_1y over_1y depends_on_subsidy"`
	PreferredContact     string `json:"preferredContact" validate:"required,oneof=phone email either"`
	Message              string `json:"message"`
}

func (r *SubsidySupportRequest) FormType() FormType { return FormSubsidySupport }

// SubmissionReceipt is the success payload for the contact endpoint.
type SubmissionReceipt struct {
	Type      FormType `json:"type"`
	Timestamp string   `json:"timestamp"`
}

// SubsidyReceipt is the success payload for the subsidy-support endpoint.
type SubsidyReceipt struct {
	ApplicationID string `json:"applicationId"`
	Timestamp     string `json:"timestamp"`
	CompanyType   string `json:"companyType"`
	BusinessType  string `json:"businessType"`
}

// NotificationResult is the logical delivery outcome per submission. It is
// logged, never returned to the caller.
type NotificationResult string

const (
	NotifiedPrimary  NotificationResult = "delivered-primary"
	NotifiedFallback NotificationResult = "delivered-fallback"
	NotifyFailed     NotificationResult = "delivery-failed"
)

// PushNotifier is the primary notification channel for new submissions.
type PushNotifier interface {
	// IsConfigured reports whether all channel secrets are present.
	IsConfigured() bool
	Push(ctx context.Context, sub Submission) error
}

// FallbackSender is the backup notification channel, used when the primary
// channel is unconfigured or its delivery attempt fails.
type FallbackSender interface {
	IsConfigured() bool
	Send(ctx context.Context, sub Submission) error
}

// SubmissionUsecase runs the lead-submission pipeline:
// sanitize, validate, notify.
type SubmissionUsecase interface {
	// Submit handles the contact endpoint's discriminated payload
	// (kind is FormContact or FormEstimate).
	Submit(ctx context.Context, kind FormType, payload map[string]interface{}) (*SubmissionReceipt, error)
	// SubmitSubsidySupport handles the subsidy-support payload.
	SubmitSubsidySupport(ctx context.Context, payload map[string]interface{}) (*SubsidyReceipt, error)
}
