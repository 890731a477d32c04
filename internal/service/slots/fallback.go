package slots

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackCatalog struct {
	Classes []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		MaxCapacity int    `yaml:"max_capacity"`
	} `yaml:"classes"`
	Slots []struct {
		ID         string `yaml:"id"`
		Class      string `yaml:"class"`
		DayOfWeek  int    `yaml:"day_of_week"`
		Start      string `yaml:"start"`
		End        string `yaml:"end"`
		Instructor string `yaml:"instructor"`
	} `yaml:"slots"`
}

// parseFallback разбирает встроенный каталог в список слотов с FromFallback=true
func parseFallback(data []byte) ([]domain.ScheduledSlot, error) {
	var catalog fallbackCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackCatalog, err)
	}

	classes := make(map[string]domain.ClassOffering, len(catalog.Classes))
	for _, c := range catalog.Classes {
		classes[c.ID] = domain.ClassOffering{
			ID:          c.ID,
			Name:        c.Name,
			MaxCapacity: ptr.Ptr(c.MaxCapacity),
			Active:      true,
			Prices:      map[domain.PackageTier]float64{},
		}
	}

	out := make([]domain.ScheduledSlot, 0, len(catalog.Slots))
	for _, s := range catalog.Slots {
		class, ok := classes[s.Class]
		if !ok {
			return nil, fmt.Errorf("%w: slot %s references unknown class %q", ErrFallbackCatalog, s.ID, s.Class)
		}

		slot := domain.TimeSlot{
			ID:         s.ID,
			ClassID:    class.ID,
			DayOfWeek:  s.DayOfWeek,
			StartTime:  types.TimeString(s.Start),
			EndTime:    types.TimeString(s.End),
			Instructor: ptr.Ptr(s.Instructor),
			Active:     true,
		}
		if err := slot.Validate(); err != nil {
			return nil, fmt.Errorf("%w: slot %s: %v", ErrFallbackCatalog, s.ID, err)
		}

		out = append(out, domain.ScheduledSlot{Slot: slot, Class: class, FromFallback: true})
	}

	return out, nil
}

// mustFallback встроенный каталог проверяется тестами, ошибка здесь означает битый бинарник
func mustFallback() []domain.ScheduledSlot {
	slots, err := parseFallback(fallbackYAML)
	if err != nil {
		panic(err)
	}
	return slots
}
