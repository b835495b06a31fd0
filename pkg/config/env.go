package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/railpath-hq/railrouter/pkg/logger"
)

const (
	// DefaultMetricsPort defines the default port for the operational server
	DefaultMetricsPort = "8080"

	// DefaultAttemptTimeout defines the default timeout in seconds for a single rail transfer attempt
	DefaultAttemptTimeout = 30

	// DefaultIntentTTL defines the default intent validity horizon in seconds
	DefaultIntentTTL = 300

	// DefaultBreakerThreshold defines the consecutive failures that open a rail's circuit
	DefaultBreakerThreshold = 3

	// DefaultBreakerCooldown defines the breaker cooldown window in seconds
	DefaultBreakerCooldown = 60

	// DefaultFiatGatewayURL defines the default fiat clearing gateway endpoint
	DefaultFiatGatewayURL = "http://localhost:8090"

	// DefaultLedgerRPCURL defines the default EVM ledger RPC endpoint
	DefaultLedgerRPCURL = "https://mainnet.base.org"

	// DefaultTokenAddress defines the default stablecoin contract (USDC on Base)
	DefaultTokenAddress = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

	// DefaultTokenDecimals defines the default stablecoin decimals
	DefaultTokenDecimals = 6

	// Default scoring weights; must sum to 1.0
	DefaultWeightCost        = 0.30
	DefaultWeightTime        = 0.25
	DefaultWeightFX          = 0.15
	DefaultWeightLiquidity   = 0.10
	DefaultWeightPolicy      = 0.15
	DefaultWeightReliability = 0.05
)

// GetEnvMetricsPort returns the operational server port from environment variables
func GetEnvMetricsPort() (string, error) {
	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		return DefaultMetricsPort, nil
	}

	if _, err := strconv.Atoi(metricsPort); err != nil {
		return "", fmt.Errorf("invalid METRICS_PORT value: %s, must be a valid integer", metricsPort)
	}
	return metricsPort, nil
}

// GetEnvAttemptTimeout returns the per-attempt timeout from environment variables
func GetEnvAttemptTimeout() (time.Duration, error) {
	timeout := os.Getenv("ATTEMPT_TIMEOUT")
	if timeout == "" {
		return DefaultAttemptTimeout * time.Second, nil
	}

	parsed, err := time.ParseDuration(timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid ATTEMPT_TIMEOUT value: %s, must be a valid duration string", timeout)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("ATTEMPT_TIMEOUT must be greater than 0")
	}
	return parsed, nil
}

// GetEnvIntentTTL returns the intent validity horizon from environment variables
func GetEnvIntentTTL() (time.Duration, error) {
	ttl := os.Getenv("INTENT_TTL")
	if ttl == "" {
		return DefaultIntentTTL * time.Second, nil
	}

	parsed, err := time.ParseDuration(ttl)
	if err != nil {
		return 0, fmt.Errorf("invalid INTENT_TTL value: %s, must be a valid duration string", ttl)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("INTENT_TTL must be greater than 0")
	}
	return parsed, nil
}

// GetEnvBreakerThreshold returns the circuit breaker threshold from environment variables
func GetEnvBreakerThreshold() (int, error) {
	threshold := os.Getenv("BREAKER_THRESHOLD")
	if threshold == "" {
		return DefaultBreakerThreshold, nil
	}

	thresholdInt, err := strconv.Atoi(threshold)
	if err != nil {
		return 0, fmt.Errorf("invalid BREAKER_THRESHOLD value: %s, must be an integer", threshold)
	}
	if thresholdInt <= 0 {
		return 0, fmt.Errorf("BREAKER_THRESHOLD must be greater than 0")
	}
	return thresholdInt, nil
}

// GetEnvBreakerCooldown returns the circuit breaker cooldown window from environment variables
func GetEnvBreakerCooldown() (time.Duration, error) {
	cooldown := os.Getenv("BREAKER_COOLDOWN")
	if cooldown == "" {
		return DefaultBreakerCooldown * time.Second, nil
	}

	parsed, err := time.ParseDuration(cooldown)
	if err != nil {
		return 0, fmt.Errorf("invalid BREAKER_COOLDOWN value: %s, must be a valid duration string", cooldown)
	}
	return parsed, nil
}

// GetEnvFiatGatewayURL returns the fiat gateway endpoint from environment variables
func GetEnvFiatGatewayURL() (string, error) {
	endpoint := os.Getenv("FIAT_GATEWAY_URL")
	if endpoint == "" {
		return DefaultFiatGatewayURL, nil
	}

	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return "", fmt.Errorf("invalid FIAT_GATEWAY_URL value: %s, must be a valid URL", endpoint)
	}
	return endpoint, nil
}

// GetEnvComplianceURL returns the compliance evaluator endpoint from environment variables.
// An empty value selects the built-in allow-all gate.
func GetEnvComplianceURL() (string, error) {
	endpoint := os.Getenv("COMPLIANCE_URL")
	if endpoint == "" {
		return "", nil
	}

	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return "", fmt.Errorf("invalid COMPLIANCE_URL value: %s, must be a valid URL", endpoint)
	}
	return endpoint, nil
}

// GetEnvLedgerRPCURL returns the EVM ledger RPC endpoint from environment variables
func GetEnvLedgerRPCURL() (string, error) {
	endpoint := os.Getenv("LEDGER_RPC_URL")
	if endpoint == "" {
		return DefaultLedgerRPCURL, nil
	}

	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return "", fmt.Errorf("invalid LEDGER_RPC_URL value: %s, must be a valid URL", endpoint)
	}
	return endpoint, nil
}

// GetEnvTokenAddress returns the stablecoin contract address from environment variables
func GetEnvTokenAddress() string {
	addr := os.Getenv("LEDGER_TOKEN_ADDRESS")
	if addr == "" {
		return DefaultTokenAddress
	}
	return addr
}

// GetEnvTokenDecimals returns the stablecoin decimals from environment variables
func GetEnvTokenDecimals() (int32, error) {
	decimals := os.Getenv("LEDGER_TOKEN_DECIMALS")
	if decimals == "" {
		return DefaultTokenDecimals, nil
	}

	parsed, err := strconv.Atoi(decimals)
	if err != nil || parsed < 0 || parsed > 36 {
		return 0, fmt.Errorf("invalid LEDGER_TOKEN_DECIMALS value: %s", decimals)
	}
	return int32(parsed), nil
}

// GetEnvKafkaBrokers returns the Kafka broker list from environment variables.
// An empty value disables event publishing.
func GetEnvKafkaBrokers() []string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// GetEnvWeight returns one scoring weight from environment variables
func GetEnvWeight(name string, fallback float64) (float64, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %s, must be a float", name, value)
	}
	if parsed < 0 || parsed > 1 {
		return 0, fmt.Errorf("%s must be within [0,1]", name)
	}
	return parsed, nil
}

// GetEnvLogLevel returns the log level from environment variables
func GetEnvLogLevel() (logger.Level, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return logger.InfoLevel, nil
	}

	switch strings.ToLower(level) {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "notice":
		return logger.NoticeLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL value: %s, must be debug, info, notice or error", level)
	}
}

// GetEnvLogColoring returns whether log coloring is enabled from environment variables
func GetEnvLogColoring() (bool, error) {
	coloring := os.Getenv("LOG_COLORING")
	if coloring == "" {
		return true, nil
	}

	if coloring == "true" {
		return true, nil
	} else if coloring == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid LOG_COLORING value: %s, must be 'true' or 'false'", coloring)
}
