package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thesarya/expense/internal/domain/entity"
)

// AttachmentDTO mirrors entity.Attachment on the wire.
type AttachmentDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// CreateExpenseRequest input for recording an expense. Date defaults to the
// server timestamp when omitted.
type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category" validate:"required,min=1,max=100"`
	Item          string          `json:"item" validate:"required,min=1,max=200"`
	Centre        string          `json:"centre"` // ignored for staff; their token centre wins
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash upi card"`
	Date          *time.Time      `json:"date"`
	Note          string          `json:"note"`
	Attachments   []AttachmentDTO `json:"attachments"`
}

// UpdateExpenseRequest partial update; nil fields are left untouched.
type UpdateExpenseRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	Item          *string          `json:"item"`
	PaymentMethod *string          `json:"payment_method"`
	Date          *time.Time       `json:"date"`
	Note          *string          `json:"note"`
	Attachments   []AttachmentDTO  `json:"attachments"`
}

// ExpenseResponse expense output.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Item          string          `json:"item"`
	Centre        string          `json:"centre"`
	PaymentMethod string          `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by"`
	Note          string          `json:"note,omitempty"`
	Attachments   []AttachmentDTO `json:"attachments,omitempty"`
}

// ExpenseListResponse paginated expense list.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ListExpensesRequest query filters for expense listings. Period is one of
// week, month, all (default all) and is resolved against the server clock.
type ListExpensesRequest struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	Period   string `query:"period"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// ToAttachmentDTOs converts entity attachments for responses.
func ToAttachmentDTOs(in []entity.Attachment) []AttachmentDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]AttachmentDTO, len(in))
	for i, a := range in {
		out[i] = AttachmentDTO{Name: a.Name, URL: a.URL, Size: a.Size, Type: a.Type}
	}
	return out
}

// ToAttachmentEntities converts wire attachments for persistence.
func ToAttachmentEntities(in []AttachmentDTO) []entity.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Attachment, len(in))
	for i, a := range in {
		out[i] = entity.Attachment{Name: a.Name, URL: a.URL, Size: a.Size, Type: a.Type}
	}
	return out
}
