package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
)

// SlotConfigRepository шаблоны слотов в памяти
type SlotConfigRepository struct {
	mu      sync.RWMutex
	configs map[int64]domain.SlotConfiguration
	nextID  int64
}

// NewSlotConfigRepository создает пустой репозиторий шаблонов
func NewSlotConfigRepository() *SlotConfigRepository {
	return &SlotConfigRepository{
		configs: make(map[int64]domain.SlotConfiguration),
	}
}

// Create сохраняет шаблон и назначает ему ID
func (r *SlotConfigRepository) Create(_ context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()

	stored := *config
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.configs[stored.ID] = stored

	result := stored
	return &result, nil
}

// GetByID получает шаблон по ID
func (r *SlotConfigRepository) GetByID(_ context.Context, id int64) (*domain.SlotConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.configs[id]
	if !ok {
		return nil, storage.ErrConfigNotFound
	}
	return &config, nil
}

// List все шаблоны по возрастанию ID
func (r *SlotConfigRepository) List(_ context.Context) ([]*domain.SlotConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.SlotConfiguration, 0, len(r.configs))
	for _, c := range r.configs {
		config := c
		result = append(result, &config)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
