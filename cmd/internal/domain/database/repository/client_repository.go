package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vantay/cmd/internal/domain/entity"
)

type DefaultClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *DefaultClientRepository {
	return &DefaultClientRepository{db: db}
}

// FindByUserID returns up to limit clients owned by userID, newest first.
func (c *DefaultClientRepository) FindByUserID(ctx context.Context, userID int64, limit int) ([]*entity.Client, error) {
	var clients []*entity.Client
	err := conn(ctx, c.db).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

func (c *DefaultClientRepository) FindOwned(ctx context.Context, id, userID int64) (*entity.Client, error) {
	var client entity.Client
	err := conn(ctx, c.db).Where("id = ? AND user_id = ?", id, userID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// OwnerOf returns the user owning the client. Inside a transaction on
// postgres the row stays share-locked until commit, so the client cannot be
// deleted or reassigned under a write that depends on it.
func (c *DefaultClientRepository) OwnerOf(ctx context.Context, clientID int64) (int64, bool, error) {
	var client entity.Client
	q := conn(ctx, c.db).Select("id", "user_id")
	if isPostgres(c.db) {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}
	err := q.Where("id = ?", clientID).Take(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return client.UserID, true, nil
}

func (c *DefaultClientRepository) Create(ctx context.Context, client *entity.Client) error {
	return translate(conn(ctx, c.db).Create(client).Error)
}

// Replace overwrites every mutable column of the client matching
// {ID, UserID}. It returns false when there is no such row.
func (c *DefaultClientRepository) Replace(ctx context.Context, client *entity.Client) (bool, error) {
	res := conn(ctx, c.db).Model(&entity.Client{}).
		Where("id = ? AND user_id = ?", client.ID, client.UserID).
		Updates(map[string]any{
			"name":       client.Name,
			"email":      client.Email,
			"phone":      client.Phone,
			"updated_at": c.db.NowFunc(),
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (c *DefaultClientRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	res := conn(ctx, c.db).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Client{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
