package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yourcar/internal/domain"
)

const carColumns = `
    id, name, mileage, thumbnail_url, daily_price, monthly_price, gear_type, gas,
    created_at, COALESCE(updated_at,'') AS updated_at`

// CarRepo is the sqlite-backed car store.
type CarRepo struct{ db *sqlx.DB }

func NewCarRepo(db *sqlx.DB) *CarRepo { return &CarRepo{db: db} }

// List returns every car, oldest first.
func (r *CarRepo) List(ctx context.Context) ([]domain.Car, error) {
	out := []domain.Car{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+carColumns+`
  FROM cars
  ORDER BY created_at, id
`)
	return out, err
}

// Get returns domain.ErrNotFound when no car has the id.
func (r *CarRepo) Get(ctx context.Context, id string) (domain.Car, error) {
	return getCar(ctx, r.db, id)
}

// Insert assigns a fresh id and timestamps; any id on c is ignored.
func (r *CarRepo) Insert(ctx context.Context, c domain.Car) (domain.Car, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	c.UpdatedAt = ""
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO cars(id, name, mileage, thumbnail_url, daily_price, monthly_price, gear_type, gas, created_at)
		VALUES (:id, :name, :mileage, :thumbnail_url, :daily_price, :monthly_price, :gear_type, :gas, :created_at)
	`, c)
	if err != nil {
		return domain.Car{}, err
	}
	return c, nil
}

// Update applies p to the car with the given id inside one transaction.
func (r *CarRepo) Update(ctx context.Context, id string, p domain.CarPatch) (domain.Car, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Car{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := getCar(ctx, tx, id)
	if err != nil {
		return domain.Car{}, err
	}
	c := p.Apply(cur)
	c.UpdatedAt = now()
	if _, err := tx.NamedExecContext(ctx, `
		UPDATE cars SET
		  name = :name, mileage = :mileage, thumbnail_url = :thumbnail_url,
		  daily_price = :daily_price, monthly_price = :monthly_price,
		  gear_type = :gear_type, gas = :gas, updated_at = :updated_at
		WHERE id = :id
	`, c); err != nil {
		return domain.Car{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Car{}, err
	}
	return c, nil
}

// Delete removes the car and returns it as it was before removal.
func (r *CarRepo) Delete(ctx context.Context, id string) (domain.Car, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Car{}, err
	}
	defer func() { _ = tx.Rollback() }()

	c, err := getCar(ctx, tx, id)
	if err != nil {
		return domain.Car{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id); err != nil {
		return domain.Car{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Car{}, err
	}
	return c, nil
}

func getCar(ctx context.Context, q sqlx.QueryerContext, id string) (domain.Car, error) {
	var c domain.Car
	err := sqlx.GetContext(ctx, q, &c, `
  SELECT`+carColumns+`
  FROM cars
  WHERE id = ?
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Car{}, domain.ErrNotFound
	}
	return c, err
}
