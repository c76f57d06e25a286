package opensearch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	opensearch "github.com/opensearch-project/opensearch-go/v4"

	"github.com/diasm3/customer-cs/internal/types"
)

type SearchError struct {
	Type       types.ErrorType `json:"type"`
	Message    string          `json:"message"`
	StatusCode int             `json:"status_code,omitempty"`
	Retryable  bool            `json:"retryable"`
	RetryAfter time.Duration   `json:"retry_after,omitempty"`
	Query      string          `json:"query,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

func (e *SearchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s (HTTP %d)", e.Type, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *SearchError) IsRetryable() bool {
	return e.Retryable
}

func NewSearchError(errType types.ErrorType, message string) *SearchError {
	return &SearchError{
		Type:      errType,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

func NewRetryableSearchError(errType types.ErrorType, message string, retryAfter time.Duration) *SearchError {
	return &SearchError{
		Type:       errType,
		Message:    message,
		Retryable:  true,
		RetryAfter: retryAfter,
		Timestamp:  time.Now(),
	}
}

func ClassifyHTTPError(statusCode int, body string) *SearchError {
	switch statusCode {
	case http.StatusUnauthorized:
		return &SearchError{
			Type:       types.ErrorTypeValidation,
			Message:    "인증에 실패했습니다. OpenSearch 인증 정보를 확인해 주세요.",
			StatusCode: statusCode,
			Retryable:  false,
			Suggestion: "AWS 인증 정보가 올바르게 설정되어 있는지 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	case http.StatusForbidden:
		return &SearchError{
			Type:       types.ErrorTypeValidation,
			Message:    "접근이 거부되었습니다. IAM 권한을 확인해 주세요.",
			StatusCode: statusCode,
			Retryable:  false,
			Suggestion: "IAM 역할에 OpenSearch 접근 권한이 있는지 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	case http.StatusNotFound:
		return &SearchError{
			Type:       types.ErrorTypeStoreIndex,
			Message:    "지정한 인덱스 또는 엔드포인트를 찾을 수 없습니다.",
			StatusCode: statusCode,
			Retryable:  false,
			Suggestion: "OpenSearch 엔드포인트 URL과 인덱스 이름을 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	case http.StatusRequestTimeout:
		return &SearchError{
			Type:       types.ErrorTypeNetworkTimeout,
			Message:    "요청이 시간 초과되었습니다.",
			StatusCode: statusCode,
			Retryable:  true,
			RetryAfter: 5 * time.Second,
			Suggestion: "네트워크 연결 또는 OpenSearch 클러스터 부하를 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	case http.StatusTooManyRequests:
		retryAfter := 10 * time.Second
		if strings.Contains(body, "retry after") {
			retryAfter = 30 * time.Second
		}
		return &SearchError{
			Type:       types.ErrorTypeRateLimit,
			Message:    "요청 한도에 도달했습니다. 잠시 후 다시 시도해 주세요.",
			StatusCode: statusCode,
			Retryable:  true,
			RetryAfter: retryAfter,
			Suggestion: "요청 빈도를 낮추거나 레이트 리밋 설정을 조정해 주세요.",
			Timestamp:  time.Now(),
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return &SearchError{
			Type:       types.ErrorTypeNetworkTimeout,
			Message:    "OpenSearch 서버 오류가 발생했습니다.",
			StatusCode: statusCode,
			Retryable:  true,
			RetryAfter: 10 * time.Second,
			Suggestion: "OpenSearch 클러스터 상태를 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	default:
		return &SearchError{
			Type:       types.ErrorTypeUnknown,
			Message:    fmt.Sprintf("예상하지 못한 HTTP 오류가 발생했습니다: %s", body),
			StatusCode: statusCode,
			Retryable:  statusCode >= 500,
			RetryAfter: 5 * time.Second,
			Timestamp:  time.Now(),
		}
	}
}

// ClassifyStoreError maps any store client error onto the SearchError
// taxonomy: HTTP error responses by status code, everything else as a
// connection-level failure.
func ClassifyStoreError(err error) *SearchError {
	var structErr *opensearch.StructError
	if errors.As(err, &structErr) {
		return ClassifyHTTPError(structErr.Status, structErr.Err.Reason)
	}

	var stringErr *opensearch.StringError
	if errors.As(err, &stringErr) {
		return ClassifyHTTPError(stringErr.Status, stringErr.Err)
	}

	return ClassifyConnectionError(err)
}

func ClassifyConnectionError(err error) *SearchError {
	errMsg := err.Error()

	if strings.Contains(errMsg, "timeout") {
		return &SearchError{
			Type:       types.ErrorTypeNetworkTimeout,
			Message:    "OpenSearch 연결이 시간 초과되었습니다.",
			Retryable:  true,
			RetryAfter: 5 * time.Second,
			Suggestion: "네트워크 연결과 OpenSearch 엔드포인트를 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	}

	if strings.Contains(errMsg, "connection refused") {
		return &SearchError{
			Type:       types.ErrorTypeStoreConnection,
			Message:    "OpenSearch 연결이 거부되었습니다.",
			Retryable:  false,
			Suggestion: "OpenSearch 엔드포인트 URL과 포트가 올바른지 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	}

	if strings.Contains(errMsg, "no such host") {
		return &SearchError{
			Type:       types.ErrorTypeStoreConnection,
			Message:    "OpenSearch 호스트를 찾을 수 없습니다.",
			Retryable:  false,
			Suggestion: "OpenSearch 엔드포인트 URL의 호스트 이름을 확인해 주세요.",
			Timestamp:  time.Now(),
		}
	}

	return &SearchError{
		Type:       types.ErrorTypeUnknown,
		Message:    fmt.Sprintf("연결 오류: %v", err),
		Retryable:  true,
		RetryAfter: 10 * time.Second,
		Suggestion: "네트워크 연결을 확인해 주세요.",
		Timestamp:  time.Now(),
	}
}
