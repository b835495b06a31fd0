package config

import (
	"testing"
	"time"

	"github.com/railpath-hq/railrouter/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvMetricsPort(t *testing.T) {
	t.Setenv("METRICS_PORT", "")
	port, err := GetEnvMetricsPort()
	require.NoError(t, err)
	assert.Equal(t, DefaultMetricsPort, port)

	t.Setenv("METRICS_PORT", "9091")
	port, err = GetEnvMetricsPort()
	require.NoError(t, err)
	assert.Equal(t, "9091", port)

	t.Setenv("METRICS_PORT", "not-a-port")
	_, err = GetEnvMetricsPort()
	assert.Error(t, err)
}

func TestGetEnvAttemptTimeout(t *testing.T) {
	t.Setenv("ATTEMPT_TIMEOUT", "")
	timeout, err := GetEnvAttemptTimeout()
	require.NoError(t, err)
	assert.Equal(t, DefaultAttemptTimeout*time.Second, timeout)

	t.Setenv("ATTEMPT_TIMEOUT", "45s")
	timeout, err = GetEnvAttemptTimeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, timeout)

	t.Setenv("ATTEMPT_TIMEOUT", "-5s")
	_, err = GetEnvAttemptTimeout()
	assert.Error(t, err)

	t.Setenv("ATTEMPT_TIMEOUT", "bogus")
	_, err = GetEnvAttemptTimeout()
	assert.Error(t, err)
}

func TestGetEnvIntentTTL(t *testing.T) {
	t.Setenv("INTENT_TTL", "")
	ttl, err := GetEnvIntentTTL()
	require.NoError(t, err)
	assert.Equal(t, DefaultIntentTTL*time.Second, ttl)

	t.Setenv("INTENT_TTL", "10m")
	ttl, err = GetEnvIntentTTL()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, ttl)

	t.Setenv("INTENT_TTL", "0s")
	_, err = GetEnvIntentTTL()
	assert.Error(t, err)
}

func TestGetEnvBreakerThreshold(t *testing.T) {
	t.Setenv("BREAKER_THRESHOLD", "")
	threshold, err := GetEnvBreakerThreshold()
	require.NoError(t, err)
	assert.Equal(t, DefaultBreakerThreshold, threshold)

	t.Setenv("BREAKER_THRESHOLD", "5")
	threshold, err = GetEnvBreakerThreshold()
	require.NoError(t, err)
	assert.Equal(t, 5, threshold)

	t.Setenv("BREAKER_THRESHOLD", "0")
	_, err = GetEnvBreakerThreshold()
	assert.Error(t, err)
}

func TestGetEnvEndpoints(t *testing.T) {
	t.Setenv("FIAT_GATEWAY_URL", "")
	endpoint, err := GetEnvFiatGatewayURL()
	require.NoError(t, err)
	assert.Equal(t, DefaultFiatGatewayURL, endpoint)

	t.Setenv("FIAT_GATEWAY_URL", "http://gateway.internal:8090")
	endpoint, err = GetEnvFiatGatewayURL()
	require.NoError(t, err)
	assert.Equal(t, "http://gateway.internal:8090", endpoint)

	t.Setenv("FIAT_GATEWAY_URL", "::not-a-url")
	_, err = GetEnvFiatGatewayURL()
	assert.Error(t, err)

	// An unset compliance endpoint is valid and selects the static gate.
	t.Setenv("COMPLIANCE_URL", "")
	endpoint, err = GetEnvComplianceURL()
	require.NoError(t, err)
	assert.Empty(t, endpoint)
}

func TestGetEnvKafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	assert.Nil(t, GetEnvKafkaBrokers())

	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092 ,")
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, GetEnvKafkaBrokers())
}

func TestGetEnvWeight(t *testing.T) {
	t.Setenv("WEIGHT_COST", "")
	w, err := GetEnvWeight("WEIGHT_COST", DefaultWeightCost)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeightCost, w)

	t.Setenv("WEIGHT_COST", "0.4")
	w, err = GetEnvWeight("WEIGHT_COST", DefaultWeightCost)
	require.NoError(t, err)
	assert.Equal(t, 0.4, w)

	t.Setenv("WEIGHT_COST", "1.5")
	_, err = GetEnvWeight("WEIGHT_COST", DefaultWeightCost)
	assert.Error(t, err)

	t.Setenv("WEIGHT_COST", "abc")
	_, err = GetEnvWeight("WEIGHT_COST", DefaultWeightCost)
	assert.Error(t, err)
}

func TestGetEnvTokenDecimals(t *testing.T) {
	t.Setenv("LEDGER_TOKEN_DECIMALS", "")
	decimals, err := GetEnvTokenDecimals()
	require.NoError(t, err)
	assert.Equal(t, int32(DefaultTokenDecimals), decimals)

	t.Setenv("LEDGER_TOKEN_DECIMALS", "18")
	decimals, err = GetEnvTokenDecimals()
	require.NoError(t, err)
	assert.Equal(t, int32(18), decimals)

	t.Setenv("LEDGER_TOKEN_DECIMALS", "99")
	_, err = GetEnvTokenDecimals()
	assert.Error(t, err)
}

func TestGetEnvLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	level, err := GetEnvLogLevel()
	require.NoError(t, err)
	assert.Equal(t, logger.InfoLevel, level)

	t.Setenv("LOG_LEVEL", "DEBUG")
	level, err = GetEnvLogLevel()
	require.NoError(t, err)
	assert.Equal(t, logger.DebugLevel, level)

	t.Setenv("LOG_LEVEL", "verbose")
	_, err = GetEnvLogLevel()
	assert.Error(t, err)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := DefaultWeightCost + DefaultWeightTime + DefaultWeightFX +
		DefaultWeightLiquidity + DefaultWeightPolicy + DefaultWeightReliability
	assert.InDelta(t, 1.0, sum, 1e-9)
}
