package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ledgerRow is a minimal model for exercising traced database operations.
type ledgerRow struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"size:100"`
	CreatedAt time.Time
}

func setupTracedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&ledgerRow{}))

	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.True(t, cfg.WithoutVariables)
}

func TestDBTracingPlugin_RegisterOtelGorm_Disabled(t *testing.T) {
	db := setupTracedDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = false

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	err := plugin.RegisterOtelGorm(db)

	assert.NoError(t, err)
}

func TestDBTracingPlugin_RegisterOtelGorm_Enabled(t *testing.T) {
	db := setupTracedDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	err := plugin.RegisterOtelGorm(db)
	require.NoError(t, err)

	// Instrumented DB still executes queries
	err = db.Create(&ledgerRow{Reference: "RENT-2025-07"}).Error
	assert.NoError(t, err)
}

func TestDBTracingPlugin_RegisterOtelGorm_DoubleRegistration(t *testing.T) {
	db := setupTracedDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	// Re-registering the same callbacks must fail, not silently duplicate them
	err := plugin.RegisterOtelGorm(db)
	assert.Error(t, err)
}

func TestDBTracingPlugin_SlowQueryAttributes(t *testing.T) {
	db := setupTracedDB(t)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		otel.SetTracerProvider(originalProvider)
		_ = tp.Shutdown(context.Background())
	}()

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.SlowQueryThresh = 0 // every query counts as slow

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	require.NoError(t, db.WithContext(ctx).Create(&ledgerRow{Reference: "RENT-2025-08"}).Error)
	span.End()

	var slowFlagged bool
	for _, ended := range sr.Ended() {
		for _, attr := range ended.Attributes() {
			if string(attr.Key) == "db.slow_query" && attr.Value.AsBool() {
				slowFlagged = true
			}
		}
	}
	assert.True(t, slowFlagged, "expected a span flagged with db.slow_query")
}

func TestDBTracingPlugin_NotFoundIsNotAnError(t *testing.T) {
	db := setupTracedDB(t)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		otel.SetTracerProvider(originalProvider)
		_ = tp.Shutdown(context.Background())
	}()

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	var row ledgerRow
	err := db.WithContext(ctx).First(&row, "reference = ?", "missing").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	span.End()

	for _, ended := range sr.Ended() {
		for _, event := range ended.Events() {
			assert.NotEqual(t, "exception", event.Name, "record-not-found must not be recorded as an error")
		}
	}
}
