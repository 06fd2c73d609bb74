// Package integration contains end-to-end tests that exercise the
// application services against a real database. Tests run on an in-memory
// SQLite database migrated from the persistence models, so the full
// repository and transaction paths are covered without external
// infrastructure.
package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	financeapp "github.com/proptraka/backend/internal/application/finance"
	identityapp "github.com/proptraka/backend/internal/application/identity"
	lettingapp "github.com/proptraka/backend/internal/application/letting"
	maintenanceapp "github.com/proptraka/backend/internal/application/maintenance"
	domainfinance "github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/auth"
	"github.com/proptraka/backend/internal/infrastructure/cache"
	"github.com/proptraka/backend/internal/infrastructure/config"
	"github.com/proptraka/backend/internal/infrastructure/event"
	"github.com/proptraka/backend/internal/infrastructure/persistence"
	"github.com/proptraka/backend/internal/infrastructure/persistence/models"
	"github.com/proptraka/backend/tests/testutil"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&models.LandlordModel{},
		&models.PropertyModel{},
		&models.TenantModel{},
		&models.TenancyModel{},
		&models.RevenueTransactionModel{},
		&models.ExpenseModel{},
		&models.MaintenanceRequestModel{},
	)
	require.NoError(t, err, "failed to migrate test schema")

	return db
}

// testRepos bundles the GORM repositories used by the service stack.
type testRepos struct {
	landlords    *persistence.GormLandlordRepository
	properties   *persistence.GormPropertyRepository
	tenants      *persistence.GormTenantRepository
	tenancies    *persistence.GormTenancyRepository
	transactions *persistence.GormRevenueTransactionRepository
	expenses     *persistence.GormExpenseRepository
	maintenance  *persistence.GormMaintenanceRequestRepository
	chargeWriter *persistence.GormTenancyChargeWriter
	applier      *persistence.GormTerminationApplier
}

func newRepos(db *gorm.DB) testRepos {
	return testRepos{
		landlords:    persistence.NewGormLandlordRepository(db),
		properties:   persistence.NewGormPropertyRepository(db),
		tenants:      persistence.NewGormTenantRepository(db),
		tenancies:    persistence.NewGormTenancyRepository(db),
		transactions: persistence.NewGormRevenueTransactionRepository(db),
		expenses:     persistence.NewGormExpenseRepository(db),
		maintenance:  persistence.NewGormMaintenanceRequestRepository(db),
		chargeWriter: persistence.NewGormTenancyChargeWriter(db),
		applier:      persistence.NewGormTerminationApplier(db),
	}
}

// testEnv wires the full application service stack over a test database,
// mirroring the composition in cmd/server.
type testEnv struct {
	db *gorm.DB

	auth         *identityapp.AuthService
	properties   *lettingapp.PropertyService
	tenants      *lettingapp.TenantService
	tenancies    *lettingapp.TenancyService
	transactions *financeapp.TransactionService
	arrears      *financeapp.ArrearsService
	handled      *testutil.MockEventHandler
	reminders    *financeapp.ReminderService
	terminations *financeapp.TerminationService
	expenses     *financeapp.ExpenseService
	reports      *financeapp.ReportService
	sweep        *financeapp.SweepService
	maintenance  *maintenanceapp.RequestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()

	repos := newRepos(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "proptraka-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	idempotencyStore := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotencyStore.Close() })

	calculator := domainfinance.NewArrearsCalculator()

	handled := testutil.NewMockEventHandler()
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(handled)

	return &testEnv{
		db:      db,
		handled: handled,
		auth: identityapp.NewAuthService(repos.landlords, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log,
			identityapp.WithAuthEventPublisher(bus)),
		properties: lettingapp.NewPropertyService(repos.properties, repos.tenancies, log),
		tenants:    lettingapp.NewTenantService(repos.tenants, repos.tenancies, log),
		tenancies: lettingapp.NewTenancyService(repos.tenancies, repos.properties, repos.tenants,
			repos.chargeWriter, lettingapp.DefaultTenancyServiceConfig(), log,
			lettingapp.WithTenancyEventPublisher(bus)),
		transactions: financeapp.NewTransactionService(repos.transactions, repos.tenancies,
			idempotencyStore, shared.DefaultIdempotencyConfig(), log,
			financeapp.WithTransactionEventPublisher(bus)),
		arrears:      financeapp.NewArrearsService(repos.transactions, calculator, log),
		reminders:    financeapp.NewReminderService(repos.transactions, repos.tenancies, repos.tenants, calculator, log),
		terminations: financeapp.NewTerminationService(repos.tenancies, repos.transactions, repos.applier, log),
		expenses:     financeapp.NewExpenseService(repos.expenses, repos.properties, log),
		reports:      financeapp.NewReportService(repos.transactions, repos.expenses, log),
		sweep:        financeapp.NewSweepService(repos.transactions, log),
		maintenance:  maintenanceapp.NewRequestService(repos.maintenance, repos.properties, log),
	}
}
