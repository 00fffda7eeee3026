package config

import "github.com/knadh/koanf/v2"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(k *koanf.Koanf) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolOr(k, keyMetricsOn, true),
		Port:         stringOr(k, keyMetricsPort, defaultMetricsPort),
		OtlpEndpoint: stringOr(k, keyOtelEndpoint, ""),
		ServiceName:  stringOr(k, keyOtelService, defaultServiceName),
		OtlpInsecure: boolOr(k, keyOtelInsecure, true),
	}
}
