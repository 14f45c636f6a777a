package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/utils"
)

type OperatorServiceInterface interface {
	GetOperators(ctx context.Context, filter types.Filter) ([]dto.OperatorDTO, uint64, error)
	FindOperator(ctx context.Context, id uint64) (*dto.OperatorDTO, error)
	CreateOperator(ctx context.Context, payload dto.CreateOperatorDTO) (*dto.OperatorDTO, error)
	UpdateOperator(ctx context.Context, id uint64, payload dto.UpdateOperatorDTO, sent map[string]bool) (*dto.OperatorDTO, error)
	DeleteOperator(ctx context.Context, id uint64) error
}

type OperatorService struct {
	operatorRepository repositories.OperatorRepositoryInterface
	notifier           changeNotifier
	logger             *zap.Logger
}

func NewOperatorService(operatorRepository repositories.OperatorRepositoryInterface, bus EventPublisher, logger *zap.Logger) *OperatorService {
	return &OperatorService{
		operatorRepository: operatorRepository,
		notifier:           changeNotifier{bus: bus, logger: logger},
		logger:             logger,
	}
}

func (s *OperatorService) GetOperators(ctx context.Context, filter types.Filter) ([]dto.OperatorDTO, uint64, error) {
	items, total, err := s.operatorRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.OperatorDTO, 0, len(items))
	for i := range items {
		result = append(result, operatorEntityToDTO(&items[i]))
	}
	return result, total, nil
}

func (s *OperatorService) FindOperator(ctx context.Context, id uint64) (*dto.OperatorDTO, error) {
	operator, err := s.operatorRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := operatorEntityToDTO(operator)
	return &result, nil
}

func (s *OperatorService) CreateOperator(ctx context.Context, payload dto.CreateOperatorDTO) (*dto.OperatorDTO, error) {
	operator := entities.Operator{
		Name:    strings.TrimSpace(payload.Name),
		Surname: strings.TrimSpace(payload.Surname),
		Email:   strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:   optionalString(payload.Phone),
		Role:    payload.Role,
		Active:  payload.Active == nil || *payload.Active,
	}
	id, err := s.operatorRepository.Create(ctx, nil, operator)
	if err != nil {
		s.logger.Error("Ошибка при создании оператора", zap.String("email", operator.Email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Оператор создан", zap.Uint64("id", id), zap.String("role", operator.Role))
	s.notifier.changed(ctx, "operators", events.ActionInsert, id)
	return s.FindOperator(ctx, id)
}

func (s *OperatorService) UpdateOperator(ctx context.Context, id uint64, payload dto.UpdateOperatorDTO, sent map[string]bool) (*dto.OperatorDTO, error) {
	fields := utils.PatchMap(&payload, sent)
	for _, required := range []string{"name", "surname", "email", "role", "active"} {
		if v, ok := fields[required]; ok && v == nil {
			return nil, fmt.Errorf("%w: поле %s нельзя очистить", apperrors.ErrBadRequest, required)
		}
	}
	if email, ok := fields["email"].(string); ok {
		fields["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	if err := s.operatorRepository.Update(ctx, nil, id, fields); err != nil {
		s.logger.Error("Ошибка при обновлении оператора", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "operators", events.ActionUpdate, id)
	return s.FindOperator(ctx, id)
}

func (s *OperatorService) DeleteOperator(ctx context.Context, id uint64) error {
	if err := s.operatorRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оператор удалён", zap.Uint64("id", id))
	s.notifier.changed(ctx, "operators", events.ActionDelete, id)
	return nil
}
