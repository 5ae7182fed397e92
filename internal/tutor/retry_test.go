package tutor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_TransientErrorEventuallySucceeds(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond}},
		MockResponse{Content: json.RawMessage(`{"ok": true}`)},
	)
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(resp.Content))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithRetry(mock, fastRetry(2))

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_ContextCancellationNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{}},
		MockResponse{Err: &ErrInvalidResponse{}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, 1, mock.CallCount())
}
