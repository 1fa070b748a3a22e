package service

import "github.com/stackos/catalog-backend/pkg/logger"

// Events receives notifications about committed catalog changes. The
// product service queues these as post-commit effects, so an implementation
// never observes a change that was rolled back.
type Events interface {
	ProductCreated(id uint)
	ProductUpdated(id uint)
	ProductDeleted(id uint)
}

type logEvents struct{}

// NewLogEvents returns an Events sink that only logs.
func NewLogEvents() Events {
	return logEvents{}
}

func (logEvents) ProductCreated(id uint) {
	logger.Info("Product created", map[string]interface{}{
		"product_id": id,
	})
}

func (logEvents) ProductUpdated(id uint) {
	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
}

func (logEvents) ProductDeleted(id uint) {
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
}
