package topcars_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"yourcar/internal/domain"
	"yourcar/internal/topcars"
)

type fakeService struct {
	cars []domain.Car
	err  error
}

func (f fakeService) GetCars(context.Context) ([]domain.Car, error) { return f.cars, f.err }

// blockingService never answers until ctx ends.
type blockingService struct{ cars []domain.Car }

func (b blockingService) GetCars(ctx context.Context) ([]domain.Car, error) {
	<-ctx.Done()
	return b.cars, nil
}

func sevenCars() []domain.Car {
	var out []domain.Car
	for _, n := range []string{"Audi S3 Car", "HONDA cITY", "Corolla", "Model 3", "Golf", "320d", "Kona"} {
		out = append(out, domain.Car{ID: n, Name: n, ThumbnailURL: "https://img.example.com/" + n})
	}
	return out
}

func TestView_InitialStateIsLoading(t *testing.T) {
	v := topcars.NewView(fakeService{}, topcars.NewStore())
	if v.State() != topcars.Loading {
		t.Fatalf("want loading, got %s", v.State())
	}
	if snap := v.Snapshot(1280, 0); !snap.Loading() || len(snap.Cards) != 0 || snap.Message != "" {
		t.Fatalf("loading snapshot should show neither cards nor message: %+v", snap)
	}
}

func TestView_FailedAndEmptyLookTheSame(t *testing.T) {
	failed := topcars.NewView(fakeService{err: errors.New("network down")}, topcars.NewStore())
	if err := failed.Mount(context.Background()); err == nil {
		t.Fatal("mount should surface the fetch error")
	}
	empty := topcars.NewView(fakeService{cars: []domain.Car{}}, topcars.NewStore())
	if err := empty.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}

	for name, v := range map[string]*topcars.View{"failed": failed, "empty": empty} {
		snap := v.Snapshot(1280, 0)
		if snap.State != "empty" || snap.Message != topcars.EmptyMessage {
			t.Fatalf("%s: want empty state with %q, got %+v", name, topcars.EmptyMessage, snap)
		}
		if snap.Loading() || len(snap.Cards) != 0 || snap.Carousel != nil {
			t.Fatalf("%s: empty view must not render cards or carousel: %+v", name, snap)
		}
	}
	if failed.Err() == nil || !failed.Snapshot(1280, 0).Failed {
		t.Fatal("failure should stay distinguishable to the caller")
	}
}

func TestView_PopulatedCarousel(t *testing.T) {
	store := topcars.NewStore()
	v := topcars.NewView(fakeService{cars: sevenCars()}, store)
	if err := v.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v.State() != topcars.Populated {
		t.Fatalf("want populated, got %s", v.State())
	}

	wide := v.Snapshot(1280, 0)
	if wide.Carousel == nil || wide.Carousel.Dots != 3 || len(wide.Carousel.Slides) != 3 {
		t.Fatalf("wide viewport: want 3 dots / 3 slides, got %+v", wide.Carousel)
	}
	if wide.Cards[0].ThumbnailSrc != "https://img.example.com/Audi S3 Car" {
		t.Fatalf("thumbnailUrl should map to thumbnailSrc: %+v", wide.Cards[0])
	}

	narrow := v.Snapshot(375, 0)
	if narrow.Carousel.Dots != 7 {
		t.Fatalf("mobile viewport: want 7 dots, got %d", narrow.Carousel.Dots)
	}
	if len(store.TopCars()) != 7 {
		t.Fatalf("store should hold the fetched cars, got %d", len(store.TopCars()))
	}
}

func TestView_FailureKeepsStore(t *testing.T) {
	store := topcars.NewStore()
	store.SetTopCars(sevenCars())

	v := topcars.NewView(fakeService{err: errors.New("boom")}, store)
	_ = v.Mount(context.Background())
	if len(store.TopCars()) != 7 {
		t.Fatal("a failed fetch must not overwrite the store")
	}
	if v.State() != topcars.Empty {
		t.Fatalf("want empty, got %s", v.State())
	}
}

func TestView_TeardownWritesNothing(t *testing.T) {
	store := topcars.NewStore()
	v := topcars.NewView(blockingService{cars: sevenCars()}, store)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := v.Mount(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if len(store.TopCars()) != 0 {
		t.Fatal("store written after teardown")
	}
	if !errors.Is(v.Err(), context.DeadlineExceeded) {
		t.Fatalf("Err() = %v, want deadline exceeded", v.Err())
	}
	snap := v.Snapshot(1280, 0)
	if snap.Loading() || snap.State != "empty" || snap.Message != topcars.EmptyMessage || !snap.Failed {
		t.Fatalf("an expired fetch must settle as failed and empty: %+v", snap)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := topcars.NewStore()
	in := sevenCars()
	store.SetTopCars(in)
	in[0].Name = "mutated"

	out := store.TopCars()
	if out[0].Name != "Audi S3 Car" {
		t.Fatal("store aliased the caller's slice")
	}
	out[1].Name = "mutated"
	if store.TopCars()[1].Name != "HONDA cITY" {
		t.Fatal("store handed out its own slice")
	}
}
