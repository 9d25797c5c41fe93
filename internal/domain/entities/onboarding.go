package entities

// Onboarding checklist item keys, in output order.
const (
	ChecklistAccountCreated           = "account_created"
	ChecklistEmailVerified            = "email_verified"
	ChecklistBusinessTypeSelected     = "business_type_selected"
	ChecklistCapabilitiesConfigured   = "capabilities_configured"
	ChecklistBusinessDetailsCompleted = "business_details_completed"
	ChecklistDocumentsUploaded        = "documents_uploaded"
	ChecklistPaymentMethodConfigured  = "payment_method_configured"
	ChecklistApplicationSubmitted     = "application_submitted"
	ChecklistAdminApproved            = "admin_approved"
)

// ChecklistItem is one entry of the onboarding completion report.
type ChecklistItem struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// OnboardingChecklist is the derived read-only progress report over
// merchant setup completeness.
type OnboardingChecklist struct {
	Items                []ChecklistItem `json:"items"`
	CompletedCount       int             `json:"completedCount"`
	TotalCount           int             `json:"totalCount"`
	CompletionPercentage int             `json:"completionPercentage"`
}
