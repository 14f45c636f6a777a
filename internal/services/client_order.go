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

type ClientOrderServiceInterface interface {
	GetClientOrders(ctx context.Context, filter types.Filter) ([]dto.ClientOrderDTO, uint64, error)
	FindClientOrder(ctx context.Context, id uint64) (*dto.ClientOrderDTO, error)
	CreateClientOrder(ctx context.Context, payload dto.CreateClientOrderDTO) (*dto.ClientOrderDTO, error)
	UpdateClientOrder(ctx context.Context, id uint64, payload dto.UpdateClientOrderDTO, sent map[string]bool) (*dto.ClientOrderDTO, error)
	DeleteClientOrder(ctx context.Context, id uint64) error
}

type ClientOrderService struct {
	clientOrderRepository repositories.ClientOrderRepositoryInterface
	notifier              changeNotifier
	logger                *zap.Logger
}

func NewClientOrderService(clientOrderRepository repositories.ClientOrderRepositoryInterface, bus EventPublisher, logger *zap.Logger) *ClientOrderService {
	return &ClientOrderService{
		clientOrderRepository: clientOrderRepository,
		notifier:              changeNotifier{bus: bus, logger: logger},
		logger:                logger,
	}
}

func (s *ClientOrderService) GetClientOrders(ctx context.Context, filter types.Filter) ([]dto.ClientOrderDTO, uint64, error) {
	items, total, err := s.clientOrderRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.ClientOrderDTO, 0, len(items))
	for i := range items {
		result = append(result, clientOrderEntityToDTO(&items[i]))
	}
	return result, total, nil
}

func (s *ClientOrderService) FindClientOrder(ctx context.Context, id uint64) (*dto.ClientOrderDTO, error) {
	order, err := s.clientOrderRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := clientOrderEntityToDTO(order)
	return &result, nil
}

func (s *ClientOrderService) CreateClientOrder(ctx context.Context, payload dto.CreateClientOrderDTO) (*dto.ClientOrderDTO, error) {
	orderDate, err := parseDate(payload.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("%w: order_date", apperrors.ErrBadRequest)
	}
	expectedDate, err := parseDate(payload.ExpectedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expected_date", apperrors.ErrBadRequest)
	}

	order := entities.ClientOrder{
		ClientID:     payload.ClientID,
		DeviceID:     payload.DeviceID,
		Description:  payload.Description,
		Status:       payload.Status,
		ExpectedDate: expectedDate,
		Deposit:      payload.Deposit,
		Notes:        optionalString(payload.Notes),
	}
	if orderDate != nil {
		order.OrderDate = *orderDate
	}
	if order.Status == "" {
		order.Status = "open"
	}

	id, err := s.clientOrderRepository.Create(ctx, nil, order)
	if err != nil {
		s.logger.Error("Ошибка при создании заказа клиента", zap.Uint64("client_id", payload.ClientID), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "client_orders", events.ActionInsert, id)
	return s.FindClientOrder(ctx, id)
}

func (s *ClientOrderService) UpdateClientOrder(ctx context.Context, id uint64, payload dto.UpdateClientOrderDTO, sent map[string]bool) (*dto.ClientOrderDTO, error) {
	if err := s.clientOrderRepository.Update(ctx, nil, id, utils.PatchMap(&payload, sent)); err != nil {
		s.logger.Error("Ошибка при обновлении заказа клиента", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "client_orders", events.ActionUpdate, id)
	return s.FindClientOrder(ctx, id)
}

func (s *ClientOrderService) DeleteClientOrder(ctx context.Context, id uint64) error {
	if err := s.clientOrderRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.changed(ctx, "client_orders", events.ActionDelete, id)
	return nil
}
