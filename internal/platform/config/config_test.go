package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"FORMBUILDER_ADDR", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "SUBMISSION_TIMEOUT", "AUDIT_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.SubmissionTimeout)
	assert.Equal(t, 10*time.Second, cfg.CompensationTimeout)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "formbuilder.audit", cfg.Kafka.AuditTopic)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FORMBUILDER_ADDR", ":9090")
	t.Setenv("SUBMISSION_TIMEOUT", "5s")
	t.Setenv("COMPENSATION_TIMEOUT", "not-a-duration")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REDIS_POOL_SIZE", "25")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.SubmissionTimeout)
	assert.Equal(t, 10*time.Second, cfg.CompensationTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
}
