package maintenance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRequest(t *testing.T) *Request {
	t.Helper()
	r, err := NewRequest(uuid.New(), uuid.New(), nil, "Leaking kitchen tap", "Unit 4B, leaks overnight", PriorityMedium)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()

	tests := []struct {
		name       string
		propertyID uuid.UUID
		title      string
		priority   RequestPriority
		wantErr    bool
	}{
		{"valid", propertyID, "Leaking kitchen tap", PriorityMedium, false},
		{"nil property", uuid.Nil, "Leaking kitchen tap", PriorityMedium, true},
		{"empty title", propertyID, "  ", PriorityMedium, true},
		{"bad priority", propertyID, "Leaking kitchen tap", RequestPriority("WHENEVER"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRequest(ownerID, tt.propertyID, nil, tt.title, "", tt.priority)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, RequestStatusOpen, r.Status)
		})
	}
}

func TestRequest_Lifecycle(t *testing.T) {
	r := openRequest(t)

	require.NoError(t, r.Start())
	assert.Equal(t, RequestStatusInProgress, r.Status)

	require.NoError(t, r.Resolve("replaced tap washer"))
	assert.Equal(t, RequestStatusResolved, r.Status)
	assert.NotNil(t, r.ResolvedAt)
	assert.Equal(t, "replaced tap washer", r.Resolution)

	// Terminal: nothing moves after resolution
	assert.Error(t, r.Start())
	assert.Error(t, r.Cancel(""))
	assert.Error(t, r.Resolve(""))
}

func TestRequest_ResolveDirectlyFromOpen(t *testing.T) {
	r := openRequest(t)
	require.NoError(t, r.Resolve("tenant fixed it themselves"))
	assert.Equal(t, RequestStatusResolved, r.Status)
}

func TestRequest_Cancel(t *testing.T) {
	r := openRequest(t)
	require.NoError(t, r.Cancel("duplicate report"))
	assert.Equal(t, RequestStatusCancelled, r.Status)
	assert.Error(t, r.Start())
}
