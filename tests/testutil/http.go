// Package testutil provides common test utilities for the PropTraka backend.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase drives a single handler invocation. Landlord, when set, is
// placed in the context the way the JWT middleware would after validating a
// bearer token, so owner-scoped handlers resolve it without a real token.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Landlord       string
	Body           interface{}
	Headers        map[string]string
	ExpectedStatus int
	ExpectedBody   map[string]interface{}
	Setup          func(t *testing.T, tc *TestContext)
	Validate       func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as a subtest against the handler.
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase executes one case: builds the request, applies the
// authenticated landlord and any setup hook, invokes the handler, and checks
// the expected status and body keys.
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}
	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = req

	testCtx := &TestContext{Context: c, Recorder: w, Engine: engine}
	if tc.Landlord != "" {
		testCtx.SetLandlordID(tc.Landlord)
	}
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(c)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "unexpected status code")
	}
	if tc.ExpectedBody != nil {
		actual := JSONResponse(t, testCtx)
		for key, want := range tc.ExpectedBody {
			assert.Equal(t, want, actual[key], "unexpected value for key %q", key)
		}
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

// JSONResponse parses the response body as a generic JSON object.
func JSONResponse(t *testing.T, tc *TestContext) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "response body is not valid JSON")
	return result
}

// JSONResponseAs parses the response body into T.
func JSONResponseAs[T any](t *testing.T, tc *TestContext) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "response body is not valid JSON")
	return result
}

// AssertSuccessResponse asserts the standard success envelope:
// success true and no error object.
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, true, resp["success"], "expected a success envelope")
	assert.Nil(t, resp["error"], "success envelope must not carry an error")
}

// SuccessData asserts the success envelope and returns its data object for
// field-level assertions.
func SuccessData(t *testing.T, tc *TestContext) map[string]interface{} {
	t.Helper()

	AssertSuccessResponse(t, tc)
	resp := JSONResponse(t, tc)
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "success envelope carries no data object")
	return data
}

// AssertErrorResponse asserts the standard error envelope and its code.
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, false, resp["success"], "expected an error envelope")

	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "error envelope carries no error object")
	assert.Equal(t, expectedCode, errObj["code"], "unexpected error code")
}

// ToJSONReader marshals v into a reader suitable as a request body.
func ToJSONReader(t *testing.T, v interface{}) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "failed to marshal request body")
	return bytes.NewReader(data)
}
