package entities

import (
	"time"

	"refurb-tracker/pkg/types"
)

const (
	DocTypeQuote   = "quote"
	DocTypeInvoice = "invoice"

	DocStatusPaid      = "paid"
	DocStatusCancelled = "cancelled"
)

type QuoteInvoice struct {
	ID          uint64     `json:"id"`
	ClientID    uint64     `json:"client_id"`
	DocType     string     `json:"doc_type"`
	DocNumber   string     `json:"doc_number"`
	IssueDate   time.Time  `json:"issue_date"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Amount      float64    `json:"amount"`
	VatRate     float64    `json:"vat_rate"`
	TotalAmount float64    `json:"total_amount"`
	Notes       *string    `json:"notes"`
	FilePath    *string    `json:"file_path"`

	types.BaseEntity

	// Поле из quotes_invoices_view
	ClientName *string `db:"-"`
}
