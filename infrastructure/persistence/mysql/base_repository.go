package mysql

import (
	"context"
	"errors"

	"remindly/infrastructure/persistence"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// baseRepository carries the behavior every aggregate repository
// shares: joining the ambient unit-of-work transaction and falling back
// to a one-shot transaction outside one.
type baseRepository struct {
	db *gorm.DB
}

func (r *baseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// inTx runs fn in the ambient transaction when there is one, otherwise
// in a transaction of its own.
func (r *baseRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// isDuplicateKeyError inspects the driver error number (1062) rather
// than matching on message text.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// findOnePO looks up a single row, mapping gorm's not-found to
// (nil, nil) so uniqueness checks can distinguish absence from failure.
func findOnePO[P any](db *gorm.DB, query string, args ...interface{}) (*P, error) {
	var row P
	result := db.Where(query, args...).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &row, nil
}
