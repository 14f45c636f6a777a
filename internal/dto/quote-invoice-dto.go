package dto

import "github.com/aarondl/null/v8"

type CreateQuoteInvoiceDTO struct {
	ClientID  uint64   `json:"client_id" validate:"required,gt=0"`
	DocType   string   `json:"doc_type" validate:"required,oneof=quote invoice"`
	DocNumber string   `json:"doc_number" validate:"required,max=50"`
	IssueDate string   `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   string   `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string   `json:"status" validate:"omitempty,oneof=draft sent accepted rejected paid cancelled"`
	Amount    float64  `json:"amount" validate:"gte=0"`
	VatRate   *float64 `json:"vat_rate" validate:"omitempty,gte=0,lte=100"`
	Notes     string   `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateQuoteInvoiceDTO struct {
	ClientID  null.Uint64  `json:"client_id" validate:"omitempty,gt=0"`
	DocType   null.String  `json:"doc_type" validate:"omitempty,oneof=quote invoice"`
	DocNumber null.String  `json:"doc_number" validate:"omitempty,max=50"`
	IssueDate null.String  `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   null.String  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status    null.String  `json:"status" validate:"omitempty,oneof=draft sent accepted rejected paid cancelled"`
	Amount    null.Float64 `json:"amount" validate:"omitempty,gte=0"`
	VatRate   null.Float64 `json:"vat_rate" validate:"omitempty,gte=0,lte=100"`
	Notes     null.String  `json:"notes" validate:"omitempty,max=2000"`
	FilePath  null.String  `json:"file_path" validate:"omitempty,max=255"`
}

type QuoteInvoiceDTO struct {
	ID          uint64         `json:"id"`
	Client      ShortClientDTO `json:"client"`
	DocType     string         `json:"doc_type"`
	DocNumber   string         `json:"doc_number"`
	IssueDate   string         `json:"issue_date"`
	DueDate     *string        `json:"due_date"`
	Status      string         `json:"status"`
	Amount      float64        `json:"amount"`
	VatRate     float64        `json:"vat_rate"`
	TotalAmount float64        `json:"total_amount"`
	Notes       *string        `json:"notes"`
	FilePath    *string        `json:"file_path"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}
