package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/utils"
)

// DefaultVatRate - ставка НДС, если в документе не указана.
const DefaultVatRate = 22.0

type QuoteInvoiceServiceInterface interface {
	GetQuoteInvoices(ctx context.Context, filter types.Filter) ([]dto.QuoteInvoiceDTO, uint64, error)
	FindQuoteInvoice(ctx context.Context, id uint64) (*dto.QuoteInvoiceDTO, error)
	CreateQuoteInvoice(ctx context.Context, payload dto.CreateQuoteInvoiceDTO) (*dto.QuoteInvoiceDTO, error)
	UpdateQuoteInvoice(ctx context.Context, id uint64, payload dto.UpdateQuoteInvoiceDTO, sent map[string]bool) (*dto.QuoteInvoiceDTO, error)
	DeleteQuoteInvoice(ctx context.Context, id uint64) error
}

type QuoteInvoiceService struct {
	quoteInvoiceRepository repositories.QuoteInvoiceRepositoryInterface
	notifier               changeNotifier
	logger                 *zap.Logger
}

func NewQuoteInvoiceService(quoteInvoiceRepository repositories.QuoteInvoiceRepositoryInterface, bus EventPublisher, logger *zap.Logger) *QuoteInvoiceService {
	return &QuoteInvoiceService{
		quoteInvoiceRepository: quoteInvoiceRepository,
		notifier:               changeNotifier{bus: bus, logger: logger},
		logger:                 logger,
	}
}

// TotalAmount = amount * (1 + vat_rate/100), до центов.
func TotalAmount(amount, vatRate float64) float64 {
	return roundCents(amount * (1 + vatRate/100))
}

func (s *QuoteInvoiceService) GetQuoteInvoices(ctx context.Context, filter types.Filter) ([]dto.QuoteInvoiceDTO, uint64, error) {
	items, total, err := s.quoteInvoiceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.QuoteInvoiceDTO, 0, len(items))
	for i := range items {
		result = append(result, quoteInvoiceEntityToDTO(&items[i]))
	}
	return result, total, nil
}

func (s *QuoteInvoiceService) FindQuoteInvoice(ctx context.Context, id uint64) (*dto.QuoteInvoiceDTO, error) {
	doc, err := s.quoteInvoiceRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := quoteInvoiceEntityToDTO(doc)
	return &result, nil
}

func (s *QuoteInvoiceService) CreateQuoteInvoice(ctx context.Context, payload dto.CreateQuoteInvoiceDTO) (*dto.QuoteInvoiceDTO, error) {
	issueDate, err := parseDate(payload.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: issue_date", apperrors.ErrBadRequest)
	}
	dueDate, err := parseDate(payload.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date", apperrors.ErrBadRequest)
	}

	vatRate := DefaultVatRate
	if payload.VatRate != nil {
		vatRate = *payload.VatRate
	}
	doc := entities.QuoteInvoice{
		ClientID:    payload.ClientID,
		DocType:     payload.DocType,
		DocNumber:   payload.DocNumber,
		DueDate:     dueDate,
		Status:      payload.Status,
		Amount:      payload.Amount,
		VatRate:     vatRate,
		TotalAmount: TotalAmount(payload.Amount, vatRate),
		Notes:       optionalString(payload.Notes),
	}
	if issueDate != nil {
		doc.IssueDate = *issueDate
	}
	if doc.Status == "" {
		doc.Status = "draft"
	}
	if dueDate != nil && issueDate != nil && dueDate.Before(*issueDate) {
		return nil, fmt.Errorf("%w: срок оплаты раньше даты документа", apperrors.ErrInvalidValue)
	}

	id, err := s.quoteInvoiceRepository.Create(ctx, nil, doc)
	if err != nil {
		s.logger.Error("Ошибка при создании документа", zap.String("doc_number", doc.DocNumber), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Документ создан", zap.Uint64("id", id), zap.String("doc_type", doc.DocType))
	s.notifier.changed(ctx, "quotes_invoices", events.ActionInsert, id)
	return s.FindQuoteInvoice(ctx, id)
}

// UpdateQuoteInvoice пересчитывает total_amount, если пришли amount или vat_rate.
func (s *QuoteInvoiceService) UpdateQuoteInvoice(ctx context.Context, id uint64, payload dto.UpdateQuoteInvoiceDTO, sent map[string]bool) (*dto.QuoteInvoiceDTO, error) {
	fields := utils.PatchMap(&payload, sent)

	if sent["amount"] || sent["vat_rate"] {
		current, err := s.quoteInvoiceRepository.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		amount, vatRate := current.Amount, current.VatRate
		if sent["amount"] {
			if !payload.Amount.Valid {
				return nil, fmt.Errorf("%w: поле amount нельзя очистить", apperrors.ErrBadRequest)
			}
			amount = payload.Amount.Float64
		}
		if sent["vat_rate"] {
			if !payload.VatRate.Valid {
				return nil, fmt.Errorf("%w: поле vat_rate нельзя очистить", apperrors.ErrBadRequest)
			}
			vatRate = payload.VatRate.Float64
		}
		fields["total_amount"] = TotalAmount(amount, vatRate)
	}

	if err := s.quoteInvoiceRepository.Update(ctx, nil, id, fields); err != nil {
		s.logger.Error("Ошибка при обновлении документа", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "quotes_invoices", events.ActionUpdate, id)
	return s.FindQuoteInvoice(ctx, id)
}

func (s *QuoteInvoiceService) DeleteQuoteInvoice(ctx context.Context, id uint64) error {
	if err := s.quoteInvoiceRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.changed(ctx, "quotes_invoices", events.ActionDelete, id)
	return nil
}
