package slots

import (
	"context"
	"fmt"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// Service владеет списком активных слотов расписания.
// Список читается из кэша, при промахе из хранилища. При недоступности хранилища
// отдаётся встроенный каталог, он не кэшируется.
type Service struct {
	repo     SlotRepository
	cache    SlotCache
	metrics  Metrics
	logger   Logger
	fallback []domain.ScheduledSlot
}

// NewService создает сервис слотов
func NewService(repo SlotRepository, cache SlotCache, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		fallback: mustFallback(),
	}
}

// LoadActiveSlots возвращает активные слоты, отобранные фильтром. Никогда не возвращает ошибку.
func (s *Service) LoadActiveSlots(ctx context.Context, filter Filter) []domain.ScheduledSlot {
	// 1. Кэш
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("LoadActiveSlots: cache read failed: %v", err)
	}
	if err == nil {
		s.metrics.SlotCacheLookup(ok)
	}
	if ok {
		return applyFilter(cached, filter)
	}

	// 2. Хранилище
	all, err := s.repo.ListWithClass(ctx, true)
	if err != nil {
		s.logger.Warn("LoadActiveSlots: store unavailable, serving fallback catalog: %v", err)
		s.metrics.SlotFallbackServed()
		return applyFilter(s.fallback, filter)
	}

	// 3. Прогреваем кэш
	if err := s.cache.Set(ctx, all); err != nil {
		s.logger.Warn("LoadActiveSlots: cache write failed: %v", err)
	}

	return applyFilter(all, filter)
}

// Refresh перечитывает список из хранилища и кладёт его в кэш
func (s *Service) Refresh(ctx context.Context) error {
	all, err := s.repo.ListWithClass(ctx, true)
	if err != nil {
		s.logger.Error("Refresh: repository error: %v", err)
		return fmt.Errorf("%w: Refresh - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Set(ctx, all); err != nil {
		s.logger.Error("Refresh: cache write failed: %v", err)
		return fmt.Errorf("%w: Refresh - cache error: %v", ErrInternal, err)
	}

	s.logger.Info("Refresh: cached %d active slots", len(all))
	return nil
}

// Invalidate сбрасывает кэш, следующий запрос перечитает хранилище
func (s *Service) Invalidate(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("Invalidate: cache error: %v", err)
		return fmt.Errorf("%w: Invalidate - cache error: %v", ErrInternal, err)
	}
	return nil
}

func applyFilter(all []domain.ScheduledSlot, filter Filter) []domain.ScheduledSlot {
	out := make([]domain.ScheduledSlot, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}
