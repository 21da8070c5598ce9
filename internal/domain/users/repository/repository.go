package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/raminsh/filmlog/internal/domain/users"
	"github.com/raminsh/filmlog/internal/platform/database"
	"github.com/raminsh/filmlog/pkg/apperr"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Atomic runs fn against a repository bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *UserRepository) Atomic(ctx context.Context, fn func(repo users.Repository) error) error {
	return database.RunInTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&UserRepository{db: tx})
	})
}

func (r *UserRepository) CreateUser(ctx context.Context, user *users.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateEntry(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "user_already_exists", err)
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUUID(ctx context.Context, userUUID string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("user_uuid = ?", userUUID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, userUUID string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&users.User{}).
		Where("user_uuid = ?", userUUID).
		Updates(updates).Error
}

func (r *UserRepository) SearchUsers(ctx context.Context, filter users.SearchFilter) ([]users.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&users.User{})

	if filter.FirstName != "" {
		query = query.Where("first_name LIKE ?", filter.FirstName+"%")
	}
	if filter.LastName != "" {
		query = query.Where("last_name LIKE ?", filter.LastName+"%")
	}
	if filter.BirthDateFrom != nil {
		query = query.Where("birth_date >= ?", *filter.BirthDateFrom)
	}
	if filter.BirthDateTo != nil {
		query = query.Where("birth_date <= ?", *filter.BirthDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC"
	if filter.SortDesc {
		order = "created_at DESC"
	}
	offset := (filter.Page - 1) * filter.PageSize

	var results []users.User
	if err := query.Order(order).Offset(offset).Limit(filter.PageSize).Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}
