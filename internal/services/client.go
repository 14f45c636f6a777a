package services

import (
	"context"

	"go.uber.org/zap"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/utils"
)

type ClientServiceInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error)
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO, sent map[string]bool) (*dto.ClientDTO, error)
	DeleteClient(ctx context.Context, id uint64) error
}

type ClientService struct {
	clientRepository repositories.ClientRepositoryInterface
	notifier         changeNotifier
	logger           *zap.Logger
}

func NewClientService(clientRepository repositories.ClientRepositoryInterface, bus EventPublisher, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepository: clientRepository,
		notifier:         changeNotifier{bus: bus, logger: logger},
		logger:           logger,
	}
}

func (s *ClientService) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	items, total, err := s.clientRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.ClientDTO, 0, len(items))
	for i := range items {
		result = append(result, clientEntityToDTO(&items[i]))
	}
	return result, total, nil
}

func (s *ClientService) FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error) {
	client, err := s.clientRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := clientEntityToDTO(client)
	return &result, nil
}

func (s *ClientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error) {
	client := entities.Client{
		ClientType:  payload.ClientType,
		Name:        optionalString(payload.Name),
		Surname:     optionalString(payload.Surname),
		CompanyName: optionalString(payload.CompanyName),
		TaxCode:     optionalString(payload.TaxCode),
		VatNumber:   optionalString(payload.VatNumber),
		Email:       optionalString(payload.Email),
		Phone:       optionalString(payload.Phone),
		Address:     optionalString(payload.Address),
		City:        optionalString(payload.City),
		Notes:       optionalString(payload.Notes),
	}
	id, err := s.clientRepository.Create(ctx, nil, client)
	if err != nil {
		s.logger.Error("Ошибка при создании клиента", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Клиент создан", zap.Uint64("id", id))
	s.notifier.changed(ctx, "clients", events.ActionInsert, id)
	return s.FindClient(ctx, id)
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO, sent map[string]bool) (*dto.ClientDTO, error) {
	if err := s.clientRepository.Update(ctx, nil, id, utils.PatchMap(&payload, sent)); err != nil {
		s.logger.Error("Ошибка при обновлении клиента", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.notifier.changed(ctx, "clients", events.ActionUpdate, id)
	return s.FindClient(ctx, id)
}

// DeleteClient удаляет клиента; документы и заказы удаляются каскадно, у устройств ссылка обнуляется.
func (s *ClientService) DeleteClient(ctx context.Context, id uint64) error {
	if err := s.clientRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Клиент удалён", zap.Uint64("id", id))
	s.notifier.changed(ctx, "clients", events.ActionDelete, id)
	return nil
}
