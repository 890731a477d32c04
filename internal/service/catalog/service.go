package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/StudioBookingService/internal/domain"
	classRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/class"
	slotRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/slot"
	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Service сервис каталога: классы и повторяющиеся слоты расписания.
// Все методы, кроме чтения, доступны только администратору (проверяется в middleware).
type Service struct {
	classRepo ClassRepository
	slotRepo  SlotRepository
	slotCache SlotCacheInvalidator
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	classRepo ClassRepository,
	slotRepo SlotRepository,
	slotCache SlotCacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		classRepo: classRepo,
		slotRepo:  slotRepo,
		slotCache: slotCache,
		logger:    logger,
	}
}

// ListClasses список классов по названию
func (s *Service) ListClasses(ctx context.Context, activeOnly bool) ([]*models.ClassResponse, error) {
	classes, err := s.classRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListClasses: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClasses - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.ClassResponse, 0, len(classes))
	for _, c := range classes {
		out = append(out, models.FromDomainClass(c))
	}
	return out, nil
}

// GetClass получает класс по ID
func (s *Service) GetClass(ctx context.Context, id string) (*models.ClassResponse, error) {
	class, err := s.getClass(ctx, "GetClass", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainClass(class), nil
}

// CreateClass создает класс. Название должно быть уникальным.
func (s *Service) CreateClass(ctx context.Context, req *models.ClassRequest) (*models.ClassResponse, error) {
	s.logger.Info("CreateClass: creating class name=%q", req.Name)

	// 1. Валидируем входные данные
	if err := validateClassRequest(req); err != nil {
		s.logger.Warn("CreateClass: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что класса с таким названием нет
	if err := s.ensureNameFree(ctx, "CreateClass", req.Name, ""); err != nil {
		return nil, err
	}

	// 3. Создаем класс
	class := &domain.ClassOffering{
		Name:        req.Name,
		Description: req.Description,
		MaxCapacity: req.MaxCapacity,
		Active:      req.Active == nil || *req.Active,
		Prices:      toPrices(req.Prices),
	}
	created, err := s.classRepo.Create(ctx, class)
	if err != nil {
		s.logger.Error("CreateClass: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateClass - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, "CreateClass")
	s.logger.Info("CreateClass: successfully created class id=%s", created.ID)
	return models.FromDomainClass(created), nil
}

// UpdateClass обновляет класс. Если цены не переданы, прежние сохраняются.
func (s *Service) UpdateClass(ctx context.Context, id string, req *models.ClassRequest) (*models.ClassResponse, error) {
	s.logger.Info("UpdateClass: updating class id=%s", id)

	// 1. Валидируем входные данные
	if err := validateClassRequest(req); err != nil {
		s.logger.Warn("UpdateClass: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущий класс
	class, err := s.getClass(ctx, "UpdateClass", id)
	if err != nil {
		return nil, err
	}

	// 3. Название меняется только на свободное
	if class.Name != req.Name {
		if err := s.ensureNameFree(ctx, "UpdateClass", req.Name, id); err != nil {
			return nil, err
		}
	}

	// 4. Применяем изменения
	class.Name = req.Name
	class.Description = req.Description
	class.MaxCapacity = req.MaxCapacity
	if req.Active != nil {
		class.Active = *req.Active
	}
	if req.Prices != nil {
		class.Prices = toPrices(req.Prices)
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		if errors.Is(err, classRepo.ErrClassNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("UpdateClass: repository error for class id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateClass - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, "UpdateClass")
	s.logger.Info("UpdateClass: successfully updated class id=%s", id)
	return models.FromDomainClass(class), nil
}

// ListSlots все слоты с классами (включая неактивные), по дню недели и времени
func (s *Service) ListSlots(ctx context.Context) ([]*models.SlotResponse, error) {
	slots, err := s.slotRepo.ListWithClass(ctx, false)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, models.FromDomainSlot(&slots[i]))
	}
	return out, nil
}

// CreateSlot создает повторяющийся слот для класса
func (s *Service) CreateSlot(ctx context.Context, req *models.SlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: creating slot for class=%s", req.ClassID)

	// 1. Валидируем входные данные
	slot, err := s.buildSlot(req)
	if err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Класс должен существовать
	if _, err := s.getClass(ctx, "CreateSlot", req.ClassID); err != nil {
		return nil, err
	}

	// 3. Создаем слот
	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, "CreateSlot")
	s.logger.Info("CreateSlot: successfully created slot id=%s", created.ID)
	return s.getSlotResponse(ctx, "CreateSlot", created.ID)
}

// UpdateSlot обновляет слот целиком
func (s *Service) UpdateSlot(ctx context.Context, id string, req *models.SlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: updating slot id=%s", id)

	// 1. Валидируем входные данные
	slot, err := s.buildSlot(req)
	if err != nil {
		s.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}
	slot.ID = id

	// 2. Получаем текущий слот и класс
	existing, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("UpdateSlot: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateSlot: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
	}
	if req.Active == nil {
		slot.Active = existing.Slot.Active
	}
	if existing.Slot.ClassID != slot.ClassID {
		if _, err := s.getClass(ctx, "UpdateSlot", slot.ClassID); err != nil {
			return nil, err
		}
	}

	// 3. Сохраняем
	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("UpdateSlot: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidateSlots(ctx, "UpdateSlot")
	s.logger.Info("UpdateSlot: successfully updated slot id=%s", id)
	return s.getSlotResponse(ctx, "UpdateSlot", id)
}

// Вспомогательные методы

func (s *Service) getClass(ctx context.Context, op, id string) (*domain.ClassOffering, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, classRepo.ErrClassNotFound) {
			s.logger.Warn("%s: class id=%s not found", op, id)
			return nil, ErrClassNotFound
		}
		s.logger.Error("%s: repository error for class id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return class, nil
}

func (s *Service) ensureNameFree(ctx context.Context, op, name, selfID string) error {
	existing, err := s.classRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, classRepo.ErrClassNotFound) {
		s.logger.Error("%s: failed to check class name: %v", op, err)
		return fmt.Errorf("%w: %s - failed to check class name: %v", ErrInternal, op, err)
	}
	if existing != nil && existing.ID != selfID {
		s.logger.Warn("%s: class name=%q already taken by id=%s", op, name, existing.ID)
		return ErrClassAlreadyExists
	}
	return nil
}

func (s *Service) getSlotResponse(ctx context.Context, op, id string) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to reload slot id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - reload slot: %v", ErrInternal, op, err)
	}
	return models.FromDomainSlot(slot), nil
}

func (s *Service) buildSlot(req *models.SlotRequest) (*domain.TimeSlot, error) {
	if err := validateSlotRequest(req); err != nil {
		return nil, err
	}

	slot := &domain.TimeSlot{
		ClassID:    req.ClassID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  types.TimeString(req.StartTime),
		EndTime:    types.TimeString(req.EndTime),
		Instructor: req.Instructor,
		Active:     req.Active == nil || *req.Active,
	}
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return slot, nil
}

// invalidateSlots ошибка кэша не отменяет изменение, кэш истечёт по TTL
func (s *Service) invalidateSlots(ctx context.Context, op string) {
	if err := s.slotCache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate slot cache: %v", op, err)
	}
}

func toPrices(in map[string]float64) map[domain.PackageTier]float64 {
	out := make(map[domain.PackageTier]float64, len(in))
	for tier, price := range in {
		if price > 0 {
			out[domain.PackageTier(tier)] = price
		}
	}
	return out
}
