package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	logger := zap.NewNop()
	cfg := Config{
		Enabled: false,
	}

	tp, err := NewTracerProvider(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())

	// A disabled provider still hands out usable tracers
	tracer := tp.Tracer("test")
	assert.NotNil(t, tracer)

	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	logger := zap.NewNop()
	cfg := Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
		ServiceName:       "proptraka-test",
		Insecure:          true,
	}

	// The gRPC exporter dials lazily, so no collector is needed here.
	tp, err := NewTracerProvider(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.True(t, tp.IsEnabled())
	assert.Equal(t, cfg, tp.GetConfig())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = tp.Shutdown(shutdownCtx)
}

func TestNewTracerProvider_SamplingRatios(t *testing.T) {
	logger := zap.NewNop()

	ratios := []float64{0.0, 0.5, 1.0}
	for _, ratio := range ratios {
		cfg := Config{
			Enabled:           true,
			CollectorEndpoint: "localhost:4317",
			SamplingRatio:     ratio,
			ServiceName:       "proptraka-test",
			Insecure:          true,
		}

		tp, err := NewTracerProvider(context.Background(), cfg, logger)
		require.NoError(t, err, "ratio %v", ratio)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = tp.Shutdown(shutdownCtx)
		cancel()
	}
}

func TestTracerProvider_Tracer(t *testing.T) {
	logger := zap.NewNop()
	cfg := Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
		ServiceName:       "proptraka-test",
		Insecure:          true,
	}

	tp, err := NewTracerProvider(context.Background(), cfg, logger)
	require.NoError(t, err)

	tracer := tp.Tracer("arrears")
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "compute")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = tp.Shutdown(shutdownCtx)
}

func TestConfig_ZeroValue(t *testing.T) {
	var cfg Config

	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.CollectorEndpoint)
	assert.Zero(t, cfg.SamplingRatio)
	assert.Empty(t, cfg.ServiceName)
}
