package repository

import (
	"context"

	"gorm.io/gorm"

	"vantay/cmd/internal/domain/entity"
)

const (
	postgresProbe = "select current_user, current_database(), now()"
	sqliteProbe   = "select 'sqlite', 'main', strftime('%Y-%m-%dT%H:%M:%SZ', 'now')"
)

type DefaultHealthRepository struct {
	db *gorm.DB
}

func NewHealthRepository(db *gorm.DB) *DefaultHealthRepository {
	return &DefaultHealthRepository{db: db}
}

// Probe does one round trip against the store.
func (h *DefaultHealthRepository) Probe(ctx context.Context) (*entity.DBInfo, error) {
	query := sqliteProbe
	if isPostgres(h.db) {
		query = postgresProbe
	}

	var info entity.DBInfo
	err := h.db.WithContext(ctx).Raw(query).Row().Scan(&info.CurrentUser, &info.CurrentDatabase, &info.Now)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
