package personal

import "context"

// Service applies the roster rules on top of a Store.
type Service struct {
	store Store
}

// NewService creates a roster service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every person, ordered by apellido then nombre.
func (s *Service) List(ctx context.Context) ([]Person, error) {
	return s.store.List(ctx)
}

// Get returns one person or ErrNoEncontrado.
func (s *Service) Get(ctx context.Context, dni string) (Person, error) {
	if err := ValidarDNI(dni); err != nil {
		return Person{}, err
	}
	p, err := s.store.Get(ctx, dni)
	if err != nil {
		return Person{}, err
	}
	if p == nil {
		return Person{}, ErrNoEncontrado
	}
	return *p, nil
}

// Create validates and inserts a new person.
func (s *Service) Create(ctx context.Context, p Person) (Person, error) {
	if err := Validar(p); err != nil {
		return Person{}, err
	}
	if err := s.store.Create(ctx, p); err != nil {
		return Person{}, err
	}
	return p, nil
}

// Update replaces the name fields of an existing person. The DNI cannot
// change: it is the key, not part of the payload.
func (s *Service) Update(ctx context.Context, dni, nombre, apellido string) (Person, error) {
	if err := Validar(Person{DNI: dni, Nombre: nombre, Apellido: apellido}); err != nil {
		return Person{}, err
	}
	p, err := s.store.Update(ctx, Person{DNI: dni, Nombre: nombre, Apellido: apellido})
	if err != nil {
		return Person{}, err
	}
	if p == nil {
		return Person{}, ErrNoEncontrado
	}
	return *p, nil
}

// Delete removes a person and returns the removed record. Attendance
// history for the DNI stays behind.
func (s *Service) Delete(ctx context.Context, dni string) (Person, error) {
	if err := ValidarDNI(dni); err != nil {
		return Person{}, err
	}
	p, err := s.store.Delete(ctx, dni)
	if err != nil {
		return Person{}, err
	}
	if p == nil {
		return Person{}, ErrNoEncontrado
	}
	return *p, nil
}
