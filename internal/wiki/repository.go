package wiki

import "context"

// Repository is the persistence contract for articles.
//
// Get must return deleted rows too (the service decides visibility); List
// returns every row including deleted ones, insertion order.
type Repository interface {
	List(ctx context.Context) ([]Article, error)
	Get(ctx context.Context, id string) (Article, bool, error)
	Put(ctx context.Context, a Article) error
	Count(ctx context.Context) (int, error)
}
