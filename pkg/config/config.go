package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/railpath-hq/railrouter/pkg/logger"
)

// Config holds the configuration for the rail routing service
type Config struct {
	MetricsPort    string
	AttemptTimeout time.Duration
	IntentTTL      time.Duration
	Breaker        BreakerConfig
	Weights        WeightsConfig
	FiatGateway    EndpointConfig
	Compliance     EndpointConfig
	Ledger         LedgerConfig
	PostgresDSN    string
	KafkaBrokers   []string
	LoggerConfig   LoggerConfig
}

// BreakerConfig holds circuit breaker configuration
type BreakerConfig struct {
	Threshold int
	Cooldown  time.Duration
}

// WeightsConfig holds the scoring weights; they must sum to 1.0
type WeightsConfig struct {
	Cost        float64
	Time        float64
	FX          float64
	Liquidity   float64
	Policy      float64
	Reliability float64
}

// EndpointConfig holds the address of an external HTTP collaborator
type EndpointConfig struct {
	URL    string
	APIKey string
}

// LedgerConfig holds the configuration for the EVM ledger rail
type LedgerConfig struct {
	RPCURL        string
	PrivateKey    string
	TokenAddress  string
	TokenDecimals int32
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	metricsPort, err := GetEnvMetricsPort()
	if err != nil {
		return nil, err
	}

	attemptTimeout, err := GetEnvAttemptTimeout()
	if err != nil {
		return nil, err
	}

	intentTTL, err := GetEnvIntentTTL()
	if err != nil {
		return nil, err
	}

	breakerThreshold, err := GetEnvBreakerThreshold()
	if err != nil {
		return nil, err
	}

	breakerCooldown, err := GetEnvBreakerCooldown()
	if err != nil {
		return nil, err
	}

	fiatGatewayURL, err := GetEnvFiatGatewayURL()
	if err != nil {
		return nil, err
	}

	complianceURL, err := GetEnvComplianceURL()
	if err != nil {
		return nil, err
	}

	ledgerRPCURL, err := GetEnvLedgerRPCURL()
	if err != nil {
		return nil, err
	}

	tokenDecimals, err := GetEnvTokenDecimals()
	if err != nil {
		return nil, err
	}

	weights := WeightsConfig{}
	for _, w := range []struct {
		env      string
		fallback float64
		dst      *float64
	}{
		{"WEIGHT_COST", DefaultWeightCost, &weights.Cost},
		{"WEIGHT_TIME", DefaultWeightTime, &weights.Time},
		{"WEIGHT_FX", DefaultWeightFX, &weights.FX},
		{"WEIGHT_LIQUIDITY", DefaultWeightLiquidity, &weights.Liquidity},
		{"WEIGHT_POLICY", DefaultWeightPolicy, &weights.Policy},
		{"WEIGHT_RELIABILITY", DefaultWeightReliability, &weights.Reliability},
	} {
		value, err := GetEnvWeight(w.env, w.fallback)
		if err != nil {
			return nil, err
		}
		*w.dst = value
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MetricsPort:    metricsPort,
		AttemptTimeout: attemptTimeout,
		IntentTTL:      intentTTL,
		Breaker: BreakerConfig{
			Threshold: breakerThreshold,
			Cooldown:  breakerCooldown,
		},
		Weights: weights,
		FiatGateway: EndpointConfig{
			URL:    fiatGatewayURL,
			APIKey: os.Getenv("FIAT_GATEWAY_API_KEY"),
		},
		Compliance: EndpointConfig{
			URL:    complianceURL,
			APIKey: os.Getenv("COMPLIANCE_API_KEY"),
		},
		Ledger: LedgerConfig{
			RPCURL:        ledgerRPCURL,
			PrivateKey:    os.Getenv("LEDGER_PRIVATE_KEY"),
			TokenAddress:  GetEnvTokenAddress(),
			TokenDecimals: tokenDecimals,
		},
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: GetEnvKafkaBrokers(),
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Ledger.PrivateKey == "" {
		return fmt.Errorf("LEDGER_PRIVATE_KEY environment variable is required")
	}
	sum := cfg.Weights.Cost + cfg.Weights.Time + cfg.Weights.FX +
		cfg.Weights.Liquidity + cfg.Weights.Policy + cfg.Weights.Reliability
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}
	return nil
}
