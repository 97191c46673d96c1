package repository

import (
	"context"
	"errors"
	"time"

	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SleepRecordRepository interface {
	Create(ctx context.Context, record *domain.SleepRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error)
	ListInRange(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.SleepRecord, error)
	Latest(ctx context.Context, userID uuid.UUID, n int) ([]domain.SleepRecord, error)
	HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time) (bool, error)
	GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepRecord, error)
}

type sleepRecordRepository struct {
	db *gorm.DB
}

func NewSleepRecordRepository(db *gorm.DB) SleepRecordRepository {
	return &sleepRecordRepository{db: db}
}

// Create stores the record together with its stages and samples in one
// transaction.
func (r *sleepRecordRepository) Create(ctx context.Context, record *domain.SleepRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Create(record).Error
	})
}

func (r *sleepRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepRecord, error) {
	var record domain.SleepRecord
	err := r.db.WithContext(ctx).
		Preload("Stages").
		Preload("Samples").
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Delete removes the record. Stages and samples go with it through the
// foreign key cascade.
func (r *sleepRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.SleepRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sleepRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	query := r.db.WithContext(ctx).
		Preload("Stages").
		Where("user_id = ?", userID).
		Order("start_at DESC").
		Order("id DESC")

	if filter.From != nil {
		query = query.Where("start_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_at <= ?", filter.To)
	}

	// Keyset pagination on (start_at, id), newest first
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err != nil {
			return nil, err
		}
		if cursor != nil {
			query = query.Where(
				"(start_at < ?) OR (start_at = ? AND id < ?)",
				cursor.StartAt, cursor.StartAt, cursor.ID,
			)
		}
	}

	// One extra row tells the caller whether another page exists
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var records []domain.SleepRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListInRange returns every record whose start lies in [from, to], oldest
// first, with stages loaded. Nil bounds are open.
func (r *sleepRecordRepository) ListInRange(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.SleepRecord, error) {
	query := r.db.WithContext(ctx).
		Preload("Stages").
		Where("user_id = ?", userID).
		Order("start_at ASC")

	if from != nil {
		query = query.Where("start_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_at <= ?", *to)
	}

	var records []domain.SleepRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Latest returns up to n records, most recent start first.
func (r *sleepRecordRepository) Latest(ctx context.Context, userID uuid.UUID, n int) ([]domain.SleepRecord, error) {
	var records []domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_at DESC").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// HasOverlap reports whether any of the user's records intersects
// [startAt, endAt). Touching intervals do not overlap.
func (r *sleepRecordRepository) HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.SleepRecord{}).
		Where("user_id = ?", userID).
		Where("start_at < ?", endAt).
		Where("end_at > ?", startAt).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sleepRecordRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepRecord, error) {
	var record domain.SleepRecord
	err := r.db.WithContext(ctx).
		Preload("Stages").
		Preload("Samples").
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // absence is the normal idempotency path
		}
		return nil, err
	}
	return &record, nil
}
