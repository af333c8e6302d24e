package metrics

import (
	"time"
)

// MongoTimer измеряет длительность одной операции MongoDB
type MongoTimer struct {
	service    string
	operation  string
	collection string
	start      time.Time
}

func NewMongoTimer(service, operation, collection string) *MongoTimer {
	return &MongoTimer{
		service:    service,
		operation:  operation,
		collection: collection,
		start:      time.Now(),
	}
}

func (mt *MongoTimer) ObserveDuration() {
	duration := time.Since(mt.start).Seconds()
	MongoOperationDuration.WithLabelValues(mt.service, mt.operation, mt.collection).Observe(duration)
}

func RecordMongoError(service, operation, collection string) {
	MongoErrors.WithLabelValues(service, operation, collection).Inc()
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service, operation string) {
	RedisErrors.WithLabelValues(service, operation).Inc()
}

func RecordKafkaMessageProduced(service, topic string, duration time.Duration) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(duration.Seconds())
}

func RecordKafkaError(service, topic string) {
	KafkaErrors.WithLabelValues(service, topic).Inc()
}

func RecordPurged(collection string, count int64) {
	SoftDeletedPurged.WithLabelValues(collection).Add(float64(count))
}
