package fs

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	defer func(d time.Duration) { retryBase = d }(retryBase)
	retryBase = time.Millisecond

	permanent := errors.New("permission denied")

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{
			name:      "success first time",
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			errs:      []error{syscall.EBUSY, syscall.EAGAIN, nil},
			wantCalls: 3,
		},
		{
			name:      "permanent fails fast",
			errs:      []error{permanent},
			wantCalls: 1,
			wantErr:   permanent,
		},
		{
			name:      "transient exhausts retries",
			errs:      []error{syscall.EBUSY, syscall.EBUSY, syscall.EBUSY, syscall.EBUSY, syscall.EBUSY},
			wantCalls: maxRetries,
			wantErr:   syscall.EBUSY,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(context.Background(), "test", func() error {
				e := tt.errs[calls]
				calls++
				return e
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("retry() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("retry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, "test", func() error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("retry() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}
