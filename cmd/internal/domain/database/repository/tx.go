package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vantay/cmd/internal/domain/entity"
)

type txKey struct{}

// DefaultTransactor runs units of work in a single database transaction.
// Repositories pick the transaction up from the context they are handed.
type DefaultTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *DefaultTransactor {
	return &DefaultTransactor{db: db}
}

// Atomic commits when fn returns nil and rolls back otherwise. The error
// returned by fn is passed through unchanged.
func (t *DefaultTransactor) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or the pool.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(entity.ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(entity.ErrUnknownReference, err)
	default:
		return err
	}
}
