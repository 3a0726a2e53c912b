// Package zaptelemetry adapts a zap logger to sdk.TelemetryHooks.
package zaptelemetry

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sdk "github.com/parseusers/parseusers/sdk/go"
)

// Hooks returns telemetry hooks that write SDK log entries to logger and record
// metrics as debug entries. A nil logger yields no-op hooks.
func Hooks(logger *zap.Logger) sdk.TelemetryHooks {
	if logger == nil {
		return sdk.TelemetryHooks{}
	}
	logger = logger.Named("parse")
	return sdk.TelemetryHooks{
		OnLogEntry: func(_ context.Context, entry sdk.LogEntry) {
			level := zapcore.InfoLevel
			if entry.Level == sdk.LogLevelError {
				level = zapcore.ErrorLevel
			}
			if ce := logger.Check(level, entry.Message); ce != nil {
				ce.Write(fields(entry.Fields)...)
			}
		},
		OnMetric: func(_ context.Context, metric sdk.Metric) {
			fs := make([]zap.Field, 0, len(metric.Labels)+2)
			fs = append(fs, zap.String("metric", metric.Name), zap.Float64("value", metric.Value))
			for _, k := range sortedKeys(metric.Labels) {
				fs = append(fs, zap.String(k, metric.Labels[k]))
			}
			logger.Debug("metric", fs...)
		},
	}
}

func fields(m map[string]any) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(m))
	for _, k := range keys {
		out = append(out, zap.Any(k, m[k]))
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
