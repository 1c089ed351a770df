package topcars

import (
	"sync"

	"yourcar/internal/domain"
)

// Store holds the top cars shared by every mounted view. It is only
// written through SetTopCars; readers get copies.
type Store struct {
	mu      sync.RWMutex
	topCars []domain.Car
}

func NewStore() *Store { return &Store{} }

// SetTopCars replaces the cached list wholesale.
func (s *Store) SetTopCars(cars []domain.Car) {
	cp := make([]domain.Car, len(cars))
	copy(cp, cars)
	s.mu.Lock()
	s.topCars = cp
	s.mu.Unlock()
}

func (s *Store) TopCars() []domain.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]domain.Car, len(s.topCars))
	copy(cp, s.topCars)
	return cp
}
