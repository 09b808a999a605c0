package personal

import "context"

// Store persists the roster. Lookups return (nil, nil) when the DNI does
// not exist; the service layer turns that into ErrNoEncontrado.
type Store interface {
	List(ctx context.Context) ([]Person, error)
	Get(ctx context.Context, dni string) (*Person, error)
	Create(ctx context.Context, p Person) error
	Update(ctx context.Context, p Person) (*Person, error)
	Delete(ctx context.Context, dni string) (*Person, error)
}
