package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeapp "github.com/proptraka/backend/internal/application/finance"
	identityapp "github.com/proptraka/backend/internal/application/identity"
	lettingapp "github.com/proptraka/backend/internal/application/letting"
	"github.com/proptraka/backend/internal/domain/shared"
)

type ownerFixture struct {
	ownerID   uuid.UUID
	tenancyID uuid.UUID
}

// setupOwner registers a landlord with one property, tenant and tenancy.
func setupOwner(t *testing.T, env *testEnv, email, tenantPhone string) ownerFixture {
	t.Helper()
	ctx := context.Background()

	landlord, err := env.auth.Register(ctx, identityapp.RegisterInput{
		Email:    email,
		Password: "pesa2024secure",
		FullName: "Landlord " + email,
	})
	require.NoError(t, err)

	property, err := env.properties.Create(ctx, lettingapp.CreatePropertyInput{
		OwnerID:   landlord.ID,
		Name:      "Property of " + email,
		Type:      "HOUSE",
		County:    "Kiambu",
		Town:      "Ruiru",
		Street:    "Kamiti Road",
		UnitCount: 1,
	})
	require.NoError(t, err)

	tenant, err := env.tenants.Create(ctx, lettingapp.CreateTenantInput{
		OwnerID:  landlord.ID,
		FullName: "Tenant of " + email,
		Phone:    tenantPhone,
	})
	require.NoError(t, err)

	start := monthStart(-3)
	tenancy, err := env.tenancies.Create(ctx, lettingapp.CreateTenancyInput{
		OwnerID:          landlord.ID,
		PropertyID:       property.ID,
		TenantID:         tenant.ID,
		StartDate:        start,
		RentAmount:       decimal.NewFromInt(20000),
		PaymentFrequency: "MONTHLY",
	})
	require.NoError(t, err)

	return ownerFixture{ownerID: landlord.ID, tenancyID: tenancy.ID}
}

// TestOwnerIsolation verifies that every read path is scoped to the
// authenticated landlord: listings, lookups by ID, the arrears ledger and
// write operations never leak across accounts.
func TestOwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alpha := setupOwner(t, env, "alpha@example.com", "+254700000001")
	beta := setupOwner(t, env, "beta@example.com", "+254700000002")

	// Listings only contain the caller's data
	alphaProps, err := env.properties.List(ctx, alpha.ownerID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Equal(t, int64(1), alphaProps.Total)
	assert.Equal(t, "Property of alpha@example.com", alphaProps.Items[0].Name)

	betaProps, err := env.properties.List(ctx, beta.ownerID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Equal(t, int64(1), betaProps.Total)
	assert.Equal(t, "Property of beta@example.com", betaProps.Items[0].Name)

	// Cross-owner lookup by ID behaves as not found
	_, err = env.tenancies.Get(ctx, alpha.ownerID, beta.tenancyID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Cross-owner writes are rejected the same way
	_, err = env.transactions.CreateCharge(ctx, financeapp.CreateChargeInput{
		OwnerID:   alpha.ownerID,
		TenancyID: beta.tenancyID,
		Category:  "PENALTY",
		Amount:    decimal.NewFromInt(5000),
		DueDate:   monthStart(0),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Arrears ledgers are computed per owner
	alphaLedger, err := env.arrears.Ledger(ctx, alpha.ownerID, monthStart(0))
	require.NoError(t, err)
	require.Len(t, alphaLedger.Entries, 1)
	assert.Equal(t, alpha.tenancyID, alphaLedger.Entries[0].TenancyID)

	betaLedger, err := env.arrears.Ledger(ctx, beta.ownerID, monthStart(0))
	require.NoError(t, err)
	require.Len(t, betaLedger.Entries, 1)
	assert.Equal(t, beta.tenancyID, betaLedger.Entries[0].TenancyID)

	// Transaction listings are scoped even without a tenancy filter
	alphaTxns, err := env.transactions.List(ctx,
		financeapp.ListTransactionsInput{OwnerID: alpha.ownerID}, shared.DefaultFilter())
	require.NoError(t, err)
	for _, txn := range alphaTxns.Items {
		assert.Equal(t, alpha.tenancyID, txn.TenancyID)
	}
}

// TestDuplicateRegistrationRejected verifies email uniqueness across accounts.
func TestDuplicateRegistrationRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, identityapp.RegisterInput{
		Email:    "gamma@example.com",
		Password: "rafiki2024one",
		FullName: "First Registrant",
	})
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, identityapp.RegisterInput{
		Email:    "gamma@example.com",
		Password: "rafiki2024two",
		FullName: "Second Registrant",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}
