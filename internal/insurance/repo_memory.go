package insurance

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory rate/county repository useful for tests.
type MemoryRepo struct {
	mu       sync.Mutex
	rates    []HealthRate
	counties []CountyMapping
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListRates(ctx context.Context) ([]HealthRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]HealthRate, len(r.rates))
	copy(out, r.rates)
	return out, nil
}

func (r *MemoryRepo) ListCounties(ctx context.Context) ([]CountyMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CountyMapping, len(r.counties))
	copy(out, r.counties)
	return out, nil
}

func (r *MemoryRepo) PutRate(ctx context.Context, rate HealthRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = append(r.rates, rate)
	return nil
}

func (r *MemoryRepo) PutCounty(ctx context.Context, c CountyMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counties = append(r.counties, c)
	return nil
}

func (r *MemoryRepo) CountRates(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rates), nil
}
