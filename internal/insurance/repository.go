package insurance

import "context"

// Repository is the persistence contract for rate and county data.
type Repository interface {
	ListRates(ctx context.Context) ([]HealthRate, error)
	ListCounties(ctx context.Context) ([]CountyMapping, error)
	PutRate(ctx context.Context, r HealthRate) error
	PutCounty(ctx context.Context, c CountyMapping) error
	CountRates(ctx context.Context) (int, error)
}
