package repos

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"yourcar/internal/domain"
)

//go:embed seed_cars.json
var seedCarsJSON []byte

// tsLayout is fixed-width so that created_at sorts lexically in insertion order.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

func now() string { return time.Now().UTC().Format(tsLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite has a single writer; ":memory:" databases also live per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS cars(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  mileage TEXT NOT NULL DEFAULT '',
  thumbnail_url TEXT NOT NULL DEFAULT '',
  daily_price NUMERIC NOT NULL DEFAULT 0 CHECK (daily_price >= 0),
  monthly_price NUMERIC NOT NULL DEFAULT 0 CHECK (monthly_price >= 0),
  gear_type TEXT NOT NULL DEFAULT '',
  gas TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_cars_created_at ON cars(created_at);
CREATE INDEX IF NOT EXISTS idx_cars_name       ON cars(LOWER(name));
`
	_, err := db.Exec(schema)
	return err
}

// Seeder is the subset of a car store needed to load demo data.
type Seeder interface {
	List(ctx context.Context) ([]domain.Car, error)
	Insert(ctx context.Context, c domain.Car) (domain.Car, error)
}

// SeedCars inserts the bundled demo cars when the store is empty and
// returns how many were inserted.
func SeedCars(ctx context.Context, s Seeder) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	var cars []domain.Car
	if err := json.Unmarshal(seedCarsJSON, &cars); err != nil {
		return 0, fmt.Errorf("decode seed cars: %w", err)
	}
	log.Println("[seed] inserting demo cars")
	for i, c := range cars {
		if _, err := s.Insert(ctx, c); err != nil {
			return i, fmt.Errorf("seed car %q: %w", c.Name, err)
		}
	}
	return len(cars), nil
}
