package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/utils"
)

type InterventionServiceInterface interface {
	GetInterventions(ctx context.Context, filter types.Filter) ([]dto.InterventionDTO, uint64, error)
	GetDeviceInterventions(ctx context.Context, deviceID uint64, filter types.Filter) ([]dto.InterventionDTO, uint64, error)
	FindIntervention(ctx context.Context, id uint64) (*dto.InterventionDTO, error)
	CreateIntervention(ctx context.Context, payload dto.CreateInterventionDTO) (*dto.InterventionDTO, error)
	UpdateIntervention(ctx context.Context, id uint64, payload dto.UpdateInterventionDTO, sent map[string]bool) (*dto.InterventionDTO, error)
	DeleteIntervention(ctx context.Context, id uint64) error
}

type InterventionService struct {
	interventionRepository repositories.InterventionRepositoryInterface
	deviceRepository       repositories.DeviceRepositoryInterface
	notifier               changeNotifier
	logger                 *zap.Logger
}

func NewInterventionService(
	interventionRepository repositories.InterventionRepositoryInterface,
	deviceRepository repositories.DeviceRepositoryInterface,
	bus EventPublisher,
	logger *zap.Logger,
) *InterventionService {
	return &InterventionService{
		interventionRepository: interventionRepository,
		deviceRepository:       deviceRepository,
		notifier:               changeNotifier{bus: bus, logger: logger},
		logger:                 logger,
	}
}

// newIntervention собирает сущность из DTO; статус по умолчанию pending, отметки времени по статусу.
func newIntervention(payload dto.CreateInterventionDTO, at time.Time) entities.Intervention {
	intervention := entities.Intervention{
		DeviceID:         payload.DeviceID,
		OperatorID:       payload.OperatorID,
		InterventionType: payload.InterventionType,
		Description:      optionalString(payload.Description),
		Status:           payload.Status,
		Cost:             payload.Cost,
	}
	if intervention.Status == "" {
		intervention.Status = entities.InterventionPending
	}
	switch intervention.Status {
	case entities.InterventionInProgress:
		intervention.StartedAt = &at
	case entities.InterventionCompleted:
		intervention.StartedAt = &at
		intervention.CompletedAt = &at
	}
	return intervention
}

// statusStamps дополняет изменения отметками started_at/completed_at,
// если статус меняется и отметка ещё не стоит и не прислана явно.
func statusStamps(current *entities.Intervention, fields map[string]interface{}, sent map[string]bool, at time.Time) {
	status, ok := fields["status"].(string)
	if !ok {
		return
	}
	switch status {
	case entities.InterventionInProgress:
		if current.StartedAt == nil && !sent["started_at"] {
			fields["started_at"] = at
		}
	case entities.InterventionCompleted:
		if current.CompletedAt == nil && !sent["completed_at"] {
			fields["completed_at"] = at
		}
		if current.StartedAt == nil && !sent["started_at"] {
			fields["started_at"] = at
		}
	}
}

func (s *InterventionService) GetInterventions(ctx context.Context, filter types.Filter) ([]dto.InterventionDTO, uint64, error) {
	items, total, err := s.interventionRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return interventionsToDTOs(items), total, nil
}

func (s *InterventionService) GetDeviceInterventions(ctx context.Context, deviceID uint64, filter types.Filter) ([]dto.InterventionDTO, uint64, error) {
	if _, err := s.deviceRepository.Find(ctx, deviceID); err != nil {
		return nil, 0, err
	}
	items, total, err := s.interventionRepository.ListByDevice(ctx, deviceID, filter)
	if err != nil {
		return nil, 0, err
	}
	return interventionsToDTOs(items), total, nil
}

func (s *InterventionService) FindIntervention(ctx context.Context, id uint64) (*dto.InterventionDTO, error) {
	intervention, err := s.interventionRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := interventionEntityToDTO(intervention)
	return &result, nil
}

func (s *InterventionService) CreateIntervention(ctx context.Context, payload dto.CreateInterventionDTO) (*dto.InterventionDTO, error) {
	if payload.DeviceID == 0 {
		return nil, fmt.Errorf("%w: не указано устройство", apperrors.ErrBadRequest)
	}
	intervention := newIntervention(payload, now())
	id, err := s.interventionRepository.Create(ctx, nil, intervention)
	if err != nil {
		s.logger.Error("Ошибка при создании вмешательства", zap.Uint64("device_id", payload.DeviceID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Вмешательство создано", zap.Uint64("id", id), zap.Uint64("device_id", payload.DeviceID))
	s.notifier.changed(ctx, "interventions", events.ActionInsert, id)
	return s.FindIntervention(ctx, id)
}

func (s *InterventionService) UpdateIntervention(ctx context.Context, id uint64, payload dto.UpdateInterventionDTO, sent map[string]bool) (*dto.InterventionDTO, error) {
	current, err := s.interventionRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := utils.PatchMap(&payload, sent)
	statusStamps(current, fields, sent, now())

	if err := s.interventionRepository.Update(ctx, nil, id, fields); err != nil {
		s.logger.Error("Ошибка при обновлении вмешательства", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "interventions", events.ActionUpdate, id)
	return s.FindIntervention(ctx, id)
}

func (s *InterventionService) DeleteIntervention(ctx context.Context, id uint64) error {
	if err := s.interventionRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.changed(ctx, "interventions", events.ActionDelete, id)
	return nil
}
