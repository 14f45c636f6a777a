package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/utils"
)

type DeviceServiceInterface interface {
	GetDevices(ctx context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error)
	GetDevicesByClient(ctx context.Context, clientID uint64, filter types.Filter) ([]dto.DeviceDTO, uint64, error)
	GetDevicesByOperator(ctx context.Context, operatorID uint64, filter types.Filter) ([]dto.DeviceDTO, uint64, error)
	FindDevice(ctx context.Context, id uint64) (*dto.DeviceDTO, error)
	GetDeviceDetail(ctx context.Context, id uint64) (*dto.DeviceDetailDTO, error)
	CreateDevice(ctx context.Context, payload dto.CreateDeviceDTO) (*dto.DeviceDTO, error)
	UpdateDevice(ctx context.Context, id uint64, payload dto.UpdateDeviceDTO, sent map[string]bool) (*dto.DeviceDTO, error)
	DeleteDevice(ctx context.Context, id uint64) error
}

type DeviceService struct {
	deviceRepository       repositories.DeviceRepositoryInterface
	interventionRepository repositories.InterventionRepositoryInterface
	fileRepository         repositories.FileRepositoryInterface
	txManager              repositories.TxManagerInterface
	notifier               changeNotifier
	logger                 *zap.Logger
}

func NewDeviceService(
	deviceRepository repositories.DeviceRepositoryInterface,
	interventionRepository repositories.InterventionRepositoryInterface,
	fileRepository repositories.FileRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus EventPublisher,
	logger *zap.Logger,
) *DeviceService {
	return &DeviceService{
		deviceRepository:       deviceRepository,
		interventionRepository: interventionRepository,
		fileRepository:         fileRepository,
		txManager:              txManager,
		notifier:               changeNotifier{bus: bus, logger: logger},
		logger:                 logger,
	}
}

func (s *DeviceService) GetDevices(ctx context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	items, total, err := s.deviceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return devicesToDTOs(items), total, nil
}

func (s *DeviceService) GetDevicesByClient(ctx context.Context, clientID uint64, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	items, total, err := s.deviceRepository.ListByClient(ctx, clientID, filter)
	if err != nil {
		return nil, 0, err
	}
	return devicesToDTOs(items), total, nil
}

func (s *DeviceService) GetDevicesByOperator(ctx context.Context, operatorID uint64, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	items, total, err := s.deviceRepository.ListByOperator(ctx, operatorID, filter)
	if err != nil {
		return nil, 0, err
	}
	return devicesToDTOs(items), total, nil
}

func (s *DeviceService) FindDevice(ctx context.Context, id uint64) (*dto.DeviceDTO, error) {
	device, err := s.deviceRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := deviceEntityToDTO(device)
	return &result, nil
}

// GetDeviceDetail читает устройство, его вмешательства и файлы параллельно.
func (s *DeviceService) GetDeviceDetail(ctx context.Context, id uint64) (*dto.DeviceDetailDTO, error) {
	var (
		device        *entities.Device
		interventions []entities.Intervention
		files         []entities.Attachment
	)
	all := types.Filter{WithPagination: false}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		device, err = s.deviceRepository.Find(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		interventions, _, err = s.interventionRepository.ListByDevice(gctx, id, all)
		return err
	})
	g.Go(func() error {
		var err error
		files, _, err = s.fileRepository.ListByOwner(gctx, entities.FileKindDevice, id, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DeviceDetailDTO{
		Device:        deviceEntityToDTO(device),
		Interventions: interventionsToDTOs(interventions),
		Files:         attachmentsToDTOs(files),
	}, nil
}

func (s *DeviceService) CreateDevice(ctx context.Context, payload dto.CreateDeviceDTO) (*dto.DeviceDTO, error) {
	device := entities.Device{
		Category:      payload.Category,
		ItemCode:      payload.ItemCode,
		Brand:         payload.Brand,
		Model:         payload.Model,
		SerialNumber:  optionalString(payload.SerialNumber),
		IMEI:          optionalString(payload.IMEI),
		Condition:     payload.Condition,
		Grade:         optionalString(payload.Grade),
		StockStatus:   payload.StockStatus,
		PurchasePrice: payload.PurchasePrice,
		SalePrice:     payload.SalePrice,
		Notes:         optionalString(payload.Notes),
		OperatorID:    payload.OperatorID,
		ClientID:      payload.ClientID,
	}
	if device.StockStatus == "" {
		device.StockStatus = entities.StockInStock
	}

	var deviceID, interventionID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		deviceID, err = s.deviceRepository.Create(ctx, tx, device)
		if err != nil {
			return err
		}
		if payload.InitialIntervention == nil {
			return nil
		}
		intervention := newIntervention(*payload.InitialIntervention, now())
		intervention.DeviceID = deviceID
		if intervention.OperatorID == nil {
			intervention.OperatorID = device.OperatorID
		}
		interventionID, err = s.interventionRepository.Create(ctx, tx, intervention)
		return err
	})
	if err != nil {
		s.logger.Error("Ошибка при создании устройства", zap.String("item_code", payload.ItemCode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Устройство успешно создано", zap.Uint64("id", deviceID), zap.String("category", device.Category))
	s.notifier.changed(ctx, "devices", events.ActionInsert, deviceID)
	if interventionID != 0 {
		s.notifier.changed(ctx, "interventions", events.ActionInsert, interventionID)
	}
	return s.FindDevice(ctx, deviceID)
}

func (s *DeviceService) UpdateDevice(ctx context.Context, id uint64, payload dto.UpdateDeviceDTO, sent map[string]bool) (*dto.DeviceDTO, error) {
	fields := utils.PatchMap(&payload, sent)
	if err := s.deviceRepository.Update(ctx, nil, id, fields); err != nil {
		s.logger.Error("Ошибка при обновлении устройства", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "devices", events.ActionUpdate, id)
	return s.FindDevice(ctx, id)
}

func (s *DeviceService) DeleteDevice(ctx context.Context, id uint64) error {
	if err := s.deviceRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Устройство удалено", zap.Uint64("id", id))
	s.notifier.changed(ctx, "devices", events.ActionDelete, id)
	return nil
}
