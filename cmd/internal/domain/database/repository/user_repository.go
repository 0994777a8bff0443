package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vantay/cmd/internal/domain/entity"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, u.db).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindRecent returns up to limit users, newest first.
func (u *DefaultUserRepository) FindRecent(ctx context.Context, limit int) ([]*entity.User, error) {
	var users []*entity.User
	err := conn(ctx, u.db).Order("id desc").Limit(limit).Find(&users).Error
	return users, err
}

func (u *DefaultUserRepository) ExistsByEmail(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	q := conn(ctx, u.db).Model(&entity.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (u *DefaultUserRepository) Create(ctx context.Context, user *entity.User) error {
	return translate(conn(ctx, u.db).Create(user).Error)
}

// Replace overwrites every mutable column. It returns false when no row has
// the given id.
func (u *DefaultUserRepository) Replace(ctx context.Context, user *entity.User) (bool, error) {
	res := conn(ctx, u.db).Model(&entity.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":      user.Email,
			"name":       user.Name,
			"updated_at": u.db.NowFunc(),
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (u *DefaultUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := conn(ctx, u.db).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
