package letting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name     string
		ownerID  uuid.UUID
		fullName string
		phone    string
		wantErr  bool
	}{
		{"valid tenant", ownerID, "Wanjiru Kamau", "+254712345678", false},
		{"name gets trimmed", ownerID, "  Wanjiru Kamau  ", "+254712345678", false},
		{"empty owner", uuid.Nil, "Wanjiru Kamau", "+254712345678", true},
		{"empty name", ownerID, "   ", "+254712345678", true},
		{"empty phone", ownerID, "Wanjiru Kamau", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := NewTenant(tt.ownerID, tt.fullName, tt.phone, "wanjiru@example.com", "12345678")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Wanjiru Kamau", tenant.FullName)
			assert.Equal(t, tt.phone, tenant.Phone)
			assert.Equal(t, TenantStatusActive, tenant.Status)
		})
	}
}

func TestTenant_UpdateAndArchive(t *testing.T) {
	tenant, err := NewTenant(uuid.New(), "Wanjiru Kamau", "+254712345678", "", "")
	require.NoError(t, err)

	err = tenant.Update("Wanjiru K. Otieno", "+254798765432", "wanjiru@example.com", "12345678", "+254700000000")
	require.NoError(t, err)
	assert.Equal(t, "Wanjiru K. Otieno", tenant.FullName)
	assert.Equal(t, "+254700000000", tenant.EmergencyContact)

	require.NoError(t, tenant.Archive())
	assert.Equal(t, TenantStatusArchived, tenant.Status)
	assert.Error(t, tenant.Archive())
}
