package services

import (
	"context"
	"errors"
	"fmt"

	"yourcar/internal/domain"
	applog "yourcar/internal/log"
	"yourcar/internal/validate"
)

var (
	// ErrInternal hides persistence failures from callers; the cause is only logged.
	ErrInternal     = errors.New("internal server error")
	ErrNotFound     = domain.ErrNotFound
	ErrInvalidInput = errors.New("invalid car input")
)

// CarStore is the persistence boundary for cars. Implementations assign ids
// on Insert and return domain.ErrNotFound from Update/Delete for unknown ids.
type CarStore interface {
	List(ctx context.Context) ([]domain.Car, error)
	Insert(ctx context.Context, c domain.Car) (domain.Car, error)
	Update(ctx context.Context, id string, p domain.CarPatch) (domain.Car, error)
	Delete(ctx context.Context, id string) (domain.Car, error)
}

type CarService struct {
	Store CarStore
}

func NewCarService(store CarStore) *CarService {
	return &CarService{Store: store}
}

func (s *CarService) Cars(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.Store.List(ctx)
	if err != nil {
		applog.ErrorContext(ctx, "cars.list.fail", err, nil)
		return nil, ErrInternal
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	return cars, nil
}

func (s *CarService) AddNewCar(ctx context.Context, in domain.CarPatch) (domain.Car, error) {
	if in.Name == nil {
		return domain.Car{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	in, err := clean(in)
	if err != nil {
		return domain.Car{}, err
	}
	c, err := s.Store.Insert(ctx, in.Apply(domain.Car{}))
	if err != nil {
		applog.ErrorContext(ctx, "cars.add.fail", err, nil)
		return domain.Car{}, ErrInternal
	}
	applog.AuditContext(ctx, "cars.add", map[string]any{"car_id": c.ID, "name": c.Name})
	return c, nil
}

// UpdateCar replaces only the fields present in in.
func (s *CarService) UpdateCar(ctx context.Context, id string, in domain.CarPatch) (domain.Car, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Car{}, ErrNotFound
	}
	in, err := clean(in)
	if err != nil {
		return domain.Car{}, err
	}
	c, err := s.Store.Update(ctx, id, in)
	if err != nil {
		return domain.Car{}, s.storeErr(ctx, "cars.update.fail", id, err)
	}
	applog.AuditContext(ctx, "cars.update", map[string]any{"car_id": c.ID})
	return c, nil
}

func (s *CarService) DeleteCar(ctx context.Context, id string) (domain.Car, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Car{}, ErrNotFound
	}
	c, err := s.Store.Delete(ctx, id)
	if err != nil {
		return domain.Car{}, s.storeErr(ctx, "cars.delete.fail", id, err)
	}
	applog.AuditContext(ctx, "cars.delete", map[string]any{"car_id": c.ID})
	return c, nil
}

func (s *CarService) storeErr(ctx context.Context, action, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrNotFound
	}
	applog.ErrorContext(ctx, action, err, map[string]any{"car_id": id})
	return ErrInternal
}

// clean trims and validates every field present in p.
func clean(p domain.CarPatch) (domain.CarPatch, error) {
	bad := func(field string) error { return fmt.Errorf("%w: %s", ErrInvalidInput, field) }

	if p.Name != nil {
		v, ok := validate.Name(*p.Name)
		if !ok {
			return p, bad("name")
		}
		p.Name = &v
	}
	if p.ThumbnailURL != nil {
		v, ok := validate.ThumbnailURL(*p.ThumbnailURL)
		if !ok {
			return p, bad("thumbnailUrl")
		}
		p.ThumbnailURL = &v
	}
	labels := []struct {
		field string
		ptr   **string
	}{{"mileage", &p.Mileage}, {"gearType", &p.GearType}, {"gas", &p.Gas}}
	for _, l := range labels {
		if *l.ptr == nil {
			continue
		}
		v, ok := validate.Label(**l.ptr)
		if !ok {
			return p, bad(l.field)
		}
		*l.ptr = &v
	}
	if p.DailyPrice != nil && !validate.Price(*p.DailyPrice) {
		return p, bad("dailyPrice")
	}
	if p.MonthlyPrice != nil && !validate.Price(*p.MonthlyPrice) {
		return p, bad("monthlyPrice")
	}
	return p, nil
}
