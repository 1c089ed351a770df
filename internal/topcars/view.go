// Package topcars is the view model behind the "Explore Our Top Deals" page:
// it fetches the car list once per mount, caches it in a shared Store and
// derives the loading/empty/populated state plus carousel pagination.
package topcars

import (
	"context"
	"sync"

	"yourcar/internal/domain"
	applog "yourcar/internal/log"
)

const (
	Title        = "Explore Our Top Deals"
	EmptyMessage = "No cars to show."
)

type State int

const (
	Loading State = iota
	Empty
	Populated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	}
	return "unknown"
}

// CarService is the frontend-to-backend contract: one list fetch.
type CarService interface {
	GetCars(ctx context.Context) ([]domain.Car, error)
}

// Card is a car as the carousel renders it.
type Card struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Mileage      string  `json:"mileage"`
	ThumbnailSrc string  `json:"thumbnailSrc"`
	DailyPrice   float64 `json:"dailyPrice"`
	MonthlyPrice float64 `json:"monthlyPrice"`
	GearType     string  `json:"gearType"`
	Gas          string  `json:"gas"`
}

func cardOf(c domain.Car) Card {
	return Card{
		ID:           c.ID,
		Name:         c.Name,
		Mileage:      c.Mileage,
		ThumbnailSrc: c.ThumbnailURL,
		DailyPrice:   c.DailyPrice,
		MonthlyPrice: c.MonthlyPrice,
		GearType:     c.GearType,
		Gas:          c.Gas,
	}
}

type View struct {
	svc   CarService
	store *Store

	mu      sync.Mutex
	loading bool
	err     error
}

// NewView starts in the loading state; call Mount to fetch.
func NewView(svc CarService, store *Store) *View {
	return &View{svc: svc, store: store, loading: true}
}

// Mount fetches the car list once. A successful fetch overwrites the store;
// a failed one leaves it untouched and is reported through Err. If ctx ends
// before the fetch returns, the result is dropped without touching the store
// and the view settles as failed with ctx's error.
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	cars, err := v.svc.GetCars(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.err = err
		applog.ErrorContext(ctx, "topcars.fetch.fail", err, nil)
		return err
	}
	v.store.SetTopCars(cars)
	return nil
}

// Err is the error of the last fetch, if it failed.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) State() State {
	return v.state(v.store.TopCars())
}

func (v *View) state(cars []domain.Car) State {
	v.mu.Lock()
	loading, err := v.loading, v.err
	v.mu.Unlock()
	switch {
	case loading:
		return Loading
	case err != nil, len(cars) == 0:
		return Empty
	}
	return Populated
}

// Snapshot is everything a renderer needs, for one viewport width and carousel page.
type Snapshot struct {
	State    string    `json:"state"`
	Title    string    `json:"title"`
	Message  string    `json:"message,omitempty"`
	Failed   bool      `json:"failed"`
	Cards    []Card    `json:"cards"`
	Carousel *Carousel `json:"carousel,omitempty"`
}

func (s Snapshot) Loading() bool { return s.State == Loading.String() }

func (v *View) Snapshot(width, page int) Snapshot {
	cars := v.store.TopCars()
	st := v.state(cars)
	snap := Snapshot{State: st.String(), Title: Title, Failed: v.Err() != nil, Cards: []Card{}}
	switch st {
	case Empty:
		snap.Message = EmptyMessage
	case Populated:
		for _, c := range cars {
			snap.Cards = append(snap.Cards, cardOf(c))
		}
		car := NewCarousel(snap.Cards, width, page)
		snap.Carousel = &car
	}
	return snap
}
