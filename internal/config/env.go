package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/v2"
)

func stringOr(k *koanf.Koanf, key, defaultValue string) string {
	val := strings.TrimSpace(k.String(key))
	if val != "" {
		return val
	}
	return defaultValue
}

func durationOr(k *koanf.Koanf, key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(k.String(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func positiveIntOr(k *koanf.Koanf, key string, defaultValue int) int {
	val, ok := intValue(k, key)
	if !ok || val <= 0 {
		return defaultValue
	}
	return val
}

func nonNegativeIntOr(k *koanf.Koanf, key string, defaultValue int) int {
	val, ok := intValue(k, key)
	if !ok || val < 0 {
		return defaultValue
	}
	return val
}

func intValue(k *koanf.Koanf, key string) (int, bool) {
	raw := strings.TrimSpace(k.String(key))
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}

func boolOr(k *koanf.Koanf, key string, defaultValue bool) bool {
	raw := strings.TrimSpace(k.String(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}

func modeOr(k *koanf.Koanf, key, defaultValue string) string {
	switch mode := strings.ToLower(stringOr(k, key, defaultValue)); mode {
	case ModeRemote, ModeFixture:
		return mode
	default:
		return defaultValue
	}
}
