package service

import (
	"context"
	"time"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/repository"
	"lavka/pkg/logger"
	"lavka/pkg/metrics"
)

// purger очищает одну коллекцию от старых soft-deleted записей
type purger struct {
	name  string
	purge func(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupService удаляет физически записи, помеченные deleted_at
// раньше порога хранения
type CleanupService struct {
	retention time.Duration
	purgers   []purger
}

func NewCleanupService(
	retention time.Duration,
	categories repository.CrudRepository[entity.Category],
	countries repository.CrudRepository[entity.Country],
	cities repository.CrudRepository[entity.City],
	stores repository.CrudRepository[entity.Store],
	products repository.CrudRepository[entity.Product],
	tags repository.CrudRepository[entity.Tag],
	discounts repository.CrudRepository[entity.Discount],
	customers repository.CrudRepository[entity.Customer],
	orders repository.CrudRepository[entity.Order],
	payments repository.CrudRepository[entity.Payment],
	shipments repository.CrudRepository[entity.Shipment],
) *CleanupService {
	return &CleanupService{
		retention: retention,
		purgers: []purger{
			{"categories", categories.PurgeDeletedBefore},
			{"countries", countries.PurgeDeletedBefore},
			{"cities", cities.PurgeDeletedBefore},
			{"stores", stores.PurgeDeletedBefore},
			{"products", products.PurgeDeletedBefore},
			{"tags", tags.PurgeDeletedBefore},
			{"discounts", discounts.PurgeDeletedBefore},
			{"customers", customers.PurgeDeletedBefore},
			{"orders", orders.PurgeDeletedBefore},
			{"payments", payments.PurgeDeletedBefore},
			{"shipments", shipments.PurgeDeletedBefore},
		},
	}
}

// PurgeDeleted проходит по всем коллекциям и удаляет записи,
// soft-deleted дольше срока хранения
// Ошибка одной коллекции не прерывает остальные
func (s *CleanupService) PurgeDeleted(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)

	var firstErr error
	var total int64
	for _, p := range s.purgers {
		deleted, err := p.purge(ctx, cutoff)
		if err != nil {
			logger.Error().Err(err).Str("collection", p.name).Msg("failed to purge soft-deleted records")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if deleted > 0 {
			metrics.RecordPurged(p.name, deleted)
			logger.Info().Str("collection", p.name).Int64("deleted", deleted).Msg("purged soft-deleted records")
		}
		total += deleted
	}

	logger.Info().Int64("total", total).Time("cutoff", cutoff).Msg("cleanup pass finished")
	return firstErr
}
