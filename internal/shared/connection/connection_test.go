package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_Do(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Retry{Attempts: 3}.do(context.Background(), "test", func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("refused")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up with the last error", func(t *testing.T) {
		calls := 0
		err := Retry{Attempts: 2}.do(context.Background(), "test", func(context.Context) error {
			calls++
			return errors.New("refused")
		})
		assert.ErrorContains(t, err, "test connection failed after 2 attempts: refused")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := Retry{Attempts: 5, Wait: time.Hour}.do(ctx, "test", func(context.Context) error {
			calls++
			cancel()
			return errors.New("refused")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
