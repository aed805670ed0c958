package mysql

import (
	"remindly/domain/shared"
	"remindly/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory builds one fresh unit of work per service
// operation, all sharing the same db handle, publisher and retry
// policy.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	publisher   shared.DomainEventPublisher
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, publisher shared.DomainEventPublisher, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		publisher:   publisher,
		retryConfig: retryConfig,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db, f.publisher)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
