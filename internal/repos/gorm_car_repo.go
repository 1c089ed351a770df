package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yourcar/internal/domain"
)

// OpenGorm connects to postgres and migrates the cars table.
func OpenGorm(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.Car{}); err != nil {
		return nil, err
	}
	return db, nil
}

// GormCarRepo is the car store used with DB_DRIVER=postgres.
type GormCarRepo struct{ db *gorm.DB }

func NewGormCarRepo(db *gorm.DB) *GormCarRepo { return &GormCarRepo{db: db} }

func (r *GormCarRepo) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Car{}).Order("created_at, id")
}

func (r *GormCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	out := []domain.Car{}
	if err := r.ordered(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormCarRepo) Insert(ctx context.Context, c domain.Car) (domain.Car, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	c.UpdatedAt = ""
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return domain.Car{}, err
	}
	return c, nil
}

// gormUpdateColumns are written on every update, zero values included.
var gormUpdateColumns = []string{
	"name", "mileage", "thumbnail_url", "daily_price", "monthly_price", "gear_type", "gas", "updated_at",
}

func (r *GormCarRepo) Update(ctx context.Context, id string, p domain.CarPatch) (domain.Car, error) {
	var out domain.Car
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := firstCar(tx, id)
		if err != nil {
			return err
		}
		out = p.Apply(cur)
		out.UpdatedAt = now()
		return tx.Model(&domain.Car{}).Where("id = ?", id).Select(gormUpdateColumns).Updates(&out).Error
	})
	if err != nil {
		return domain.Car{}, err
	}
	return out, nil
}

func (r *GormCarRepo) Delete(ctx context.Context, id string) (domain.Car, error) {
	var out domain.Car
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := firstCar(tx, id)
		if err != nil {
			return err
		}
		out = cur
		return tx.Delete(&domain.Car{}, "id = ?", id).Error
	})
	if err != nil {
		return domain.Car{}, err
	}
	return out, nil
}

func firstCar(tx *gorm.DB, id string) (domain.Car, error) {
	var c domain.Car
	if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Car{}, domain.ErrNotFound
		}
		return domain.Car{}, err
	}
	return c, nil
}
