package opensearch

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	opensearch "github.com/opensearch-project/opensearch-go/v4"

	"github.com/diasm3/customer-cs/internal/types"
)

func TestClassifyHTTPErrorRetryability(t *testing.T) {
	cases := []struct {
		statusCode int
		wantType   types.ErrorType
		retryable  bool
	}{
		{http.StatusUnauthorized, types.ErrorTypeValidation, false},
		{http.StatusForbidden, types.ErrorTypeValidation, false},
		{http.StatusNotFound, types.ErrorTypeStoreIndex, false},
		{http.StatusRequestTimeout, types.ErrorTypeNetworkTimeout, true},
		{http.StatusTooManyRequests, types.ErrorTypeRateLimit, true},
		{http.StatusInternalServerError, types.ErrorTypeNetworkTimeout, true},
		{http.StatusServiceUnavailable, types.ErrorTypeNetworkTimeout, true},
	}

	for _, tc := range cases {
		err := ClassifyHTTPError(tc.statusCode, "")
		if err.Type != tc.wantType {
			t.Errorf("status %d: type = %s, want %s", tc.statusCode, err.Type, tc.wantType)
		}
		if err.IsRetryable() != tc.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tc.statusCode, err.IsRetryable(), tc.retryable)
		}
		if err.StatusCode != tc.statusCode {
			t.Errorf("status %d not carried through", tc.statusCode)
		}
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := []struct {
		err       error
		wantType  types.ErrorType
		retryable bool
	}{
		{errors.New("dial tcp: i/o timeout"), types.ErrorTypeNetworkTimeout, true},
		{errors.New("dial tcp: connection refused"), types.ErrorTypeStoreConnection, false},
		{errors.New("dial tcp: lookup opensearch: no such host"), types.ErrorTypeStoreConnection, false},
		{errors.New("something else"), types.ErrorTypeUnknown, true},
	}

	for _, tc := range cases {
		searchErr := ClassifyConnectionError(tc.err)
		if searchErr.Type != tc.wantType {
			t.Errorf("%v: type = %s, want %s", tc.err, searchErr.Type, tc.wantType)
		}
		if searchErr.IsRetryable() != tc.retryable {
			t.Errorf("%v: retryable = %v, want %v", tc.err, searchErr.IsRetryable(), tc.retryable)
		}
	}
}

func TestClassifyStoreError(t *testing.T) {
	structErr := &opensearch.StructError{
		Status: http.StatusTooManyRequests,
		Err:    opensearch.Err{Reason: "rejected execution"},
	}
	searchErr := ClassifyStoreError(fmt.Errorf("search request failed: %w", structErr))
	if searchErr.Type != types.ErrorTypeRateLimit {
		t.Errorf("struct error: type = %s, want %s", searchErr.Type, types.ErrorTypeRateLimit)
	}
	if !searchErr.IsRetryable() || searchErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("struct error: retryable = %v, status = %d", searchErr.IsRetryable(), searchErr.StatusCode)
	}

	stringErr := &opensearch.StringError{Status: http.StatusForbidden, Err: "forbidden"}
	searchErr = ClassifyStoreError(fmt.Errorf("search request failed: %w", stringErr))
	if searchErr.Type != types.ErrorTypeValidation || searchErr.IsRetryable() {
		t.Errorf("string error: type = %s, retryable = %v", searchErr.Type, searchErr.IsRetryable())
	}

	searchErr = ClassifyStoreError(errors.New("dial tcp: i/o timeout"))
	if searchErr.Type != types.ErrorTypeNetworkTimeout || !searchErr.IsRetryable() {
		t.Errorf("plain error: type = %s, retryable = %v", searchErr.Type, searchErr.IsRetryable())
	}
}

func TestSearchErrorMessageFormat(t *testing.T) {
	err := NewSearchError(types.ErrorTypeValidation, "query cannot be nil")
	if err.Error() != "[validation] query cannot be nil" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}

	httpErr := ClassifyHTTPError(http.StatusForbidden, "")
	msg := httpErr.Error()
	if msg == "" || httpErr.StatusCode != http.StatusForbidden {
		t.Fatalf("HTTP error should carry status code: %s", msg)
	}
}
