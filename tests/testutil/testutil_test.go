package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	assert.NotNil(t, mockDB.SqlDB)
}

func TestMockDB_ExpectationsWereMet(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	// No expectations set, should pass
	mockDB.ExpectationsWereMet(t)
}

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t)

	assert.NotNil(t, tc.Context)
	assert.NotNil(t, tc.Recorder)
	assert.NotNil(t, tc.Engine)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
}

func TestTestContext_SetRequestID(t *testing.T) {
	tc := NewTestContext(t)

	tc.SetRequestID("req-123")

	val, exists := tc.Context.Get("request_id")
	assert.True(t, exists)
	assert.Equal(t, "req-123", val)
}

func TestTestContext_SetLandlordID(t *testing.T) {
	tc := NewTestContext(t)

	landlordID := TestLandlordID()
	tc.SetLandlordID(landlordID.String())

	val, exists := tc.Context.Get("jwt_landlord_id")
	assert.True(t, exists)
	assert.Equal(t, landlordID.String(), val)
}

func TestNewTestUUID_Deterministic(t *testing.T) {
	first := NewTestUUID("some-seed")
	second := NewTestUUID("some-seed")
	other := NewTestUUID("other-seed")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestStandardIDs_AreStable(t *testing.T) {
	assert.Equal(t, TestLandlordID(), TestLandlordID())
	assert.Equal(t, TestPropertyID(), TestPropertyID())
	assert.Equal(t, TestTenantID(), TestTenantID())
	assert.NotEqual(t, TestLandlordID(), TestTenantID())
}

func TestContextWithTimeout(t *testing.T) {
	ctx, cancel := ContextWithTimeout(t, 100*time.Millisecond)
	defer cancel()

	require.NotNil(t, ctx)

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.True(t, deadline.After(time.Now()))
}

func TestContextWithCancel(t *testing.T) {
	ctx, cancel := ContextWithCancel(t)

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be cancelled yet")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("Context should be cancelled")
	}
}

func TestAssertEventually(t *testing.T) {
	done := make(chan struct{})
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(done)
	}()

	AssertEventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 500*time.Millisecond, 10*time.Millisecond)
}

func TestAssertNever(t *testing.T) {
	AssertNever(t, func() bool {
		return false
	}, 50*time.Millisecond, 10*time.Millisecond)
}

func TestRunHTTPTestCase(t *testing.T) {
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "hello",
		})
	}

	tc := HTTPTestCase{
		Name:           "simple test",
		Method:         http.MethodGet,
		Path:           "/test",
		ExpectedStatus: http.StatusOK,
		ExpectedBody: map[string]interface{}{
			"success": true,
		},
	}

	RunHTTPTestCase(t, handler, tc)
}

func TestRunHTTPTestCase_Landlord(t *testing.T) {
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"landlord_id": c.GetString("jwt_landlord_id")},
		})
	}

	RunHTTPTestCase(t, handler, HTTPTestCase{
		Name:           "landlord flows into the handler context",
		Method:         http.MethodGet,
		Path:           "/properties",
		Landlord:       "landlord-42",
		ExpectedStatus: http.StatusOK,
		Validate: func(t *testing.T, tc *TestContext) {
			data := SuccessData(t, tc)
			assert.Equal(t, "landlord-42", data["landlord_id"])
		},
	})
}

func TestSuccessData(t *testing.T) {
	tc := NewTestContext(t)
	tc.Context.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"total_arrears": "45000"},
	})

	data := SuccessData(t, tc)
	assert.Equal(t, "45000", data["total_arrears"])
}

func TestJSONResponse(t *testing.T) {
	tc := NewTestContext(t)
	tc.Context.JSON(http.StatusOK, gin.H{"key": "value"})

	resp := JSONResponse(t, tc)
	assert.Equal(t, "value", resp["key"])
}

func TestJSONResponseAs(t *testing.T) {
	type response struct {
		Key string `json:"key"`
	}

	tc := NewTestContext(t)
	tc.Context.JSON(http.StatusOK, gin.H{"key": "value"})

	resp := JSONResponseAs[response](t, tc)
	assert.Equal(t, "value", resp.Key)
}

func TestAssertSuccessResponse(t *testing.T) {
	tc := NewTestContext(t)
	tc.Context.JSON(http.StatusOK, gin.H{"success": true})

	AssertSuccessResponse(t, tc)
}

func TestAssertErrorResponse(t *testing.T) {
	tc := NewTestContext(t)
	tc.Context.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   gin.H{"code": "ERR_NOT_FOUND", "message": "tenancy not found"},
	})

	AssertErrorResponse(t, tc, "ERR_NOT_FOUND")
}

func TestToJSONReader(t *testing.T) {
	data := map[string]string{"key": "value"}
	reader := ToJSONReader(t, data)

	require.NotNil(t, reader)
}
