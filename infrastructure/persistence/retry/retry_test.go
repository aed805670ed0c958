package retry

import (
	"context"
	"errors"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"remindly/domain/client"
	"remindly/domain/shared"
)

func fastConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = 0
	cfg.MaxDelay = 0
	cfg.JitterEnabled = false
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"optimistic lock loss", client.NewConcurrentModificationError("c1"), true},
		{"deadlock 1213", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"lock wait timeout 1205", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"duplicate key", gorm.ErrDuplicatedKey, false},
		{"plain error", errors.New("boom"), false},
		{"conflict is permanent", client.NewClientAlreadyExistsError("email", "taken@x.test"), false},
		{"not found is permanent", client.NewClientNotFoundError("c1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryableError(tt.err, cfg))
		})
	}
}

func TestIsRetryableError_RespectsToggles(t *testing.T) {
	cfg := DefaultConfig
	cfg.RetryOnConcurrentModification = false
	assert.False(t, IsRetryableError(client.NewConcurrentModificationError("c1"), cfg))

	cfg = DefaultConfig
	cfg.RetryOnDeadlock = false
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
}

func TestIsRetryableError_CustomPredicateWins(t *testing.T) {
	custom := errors.New("flaky network")
	cfg := DefaultConfig
	cfg.RetryPredicate = func(err error) bool { return errors.Is(err, custom) }

	assert.True(t, IsRetryableError(custom, cfg))
}

func TestExecuteWithRetry_RetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return client.NewConcurrentModificationError("c1")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetry_StopsAtMaxAttempts(t *testing.T) {
	attempts := 0
	lockLoss := client.NewConcurrentModificationError("c1")
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return lockLoss
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConcurrentModification)
	assert.Equal(t, DefaultConfig.MaxAttempts, attempts)
}

func TestExecuteWithRetry_NonRetryableFailsFast(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetry_DisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
		attempts++
		return client.NewConcurrentModificationError("c1")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithRetry(ctx, fastConfig(), func(ctx context.Context) error {
		t.Fatal("fn must not run with a cancelled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := DefaultConfig
	cfg.JitterEnabled = false

	assert.Equal(t, cfg.InitialDelay, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 2*cfg.InitialDelay, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, cfg.MaxDelay, ExponentialBackoffWithJitter(10, cfg), "capped at MaxDelay")
	assert.Zero(t, ExponentialBackoffWithJitter(0, cfg))
}
