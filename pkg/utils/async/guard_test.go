package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/onesky-appdesc/pkg/utils/async"
)

// safeBuffer is a thread-safe buffer for concurrent logging
type safeBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (sb *safeBuffer) Write(p []byte) (int, error) {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.Write(p)
}

func (sb *safeBuffer) String() string {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.String()
}

func TestGuard(t *testing.T) {
	t.Run("returns nil on success", func(t *testing.T) {
		executed := false
		err := async.Guard(context.Background(), func(ctx context.Context) error {
			executed = true
			return nil
		})

		gt.NoError(t, err)
		gt.True(t, executed)
	})

	t.Run("returns handler error as is", func(t *testing.T) {
		want := errors.New("test error")
		err := async.Guard(context.Background(), func(ctx context.Context) error {
			return want
		})

		gt.True(t, errors.Is(err, want))
		gt.False(t, errors.Is(err, async.ErrPanic))
	})

	t.Run("recovers from panic", func(t *testing.T) {
		err := async.Guard(context.Background(), func(ctx context.Context) error {
			panic("test panic")
		})

		gt.Error(t, err)
		gt.True(t, errors.Is(err, async.ErrPanic))
	})

	t.Run("logs panic with stack trace", func(t *testing.T) {
		logBuf := &safeBuffer{}
		logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		ctx := ctxlog.With(context.Background(), logger)

		_ = async.Guard(ctx, func(ctx context.Context) error {
			panic("test panic with stack")
		})

		logOutput := logBuf.String()
		gt.True(t, strings.Contains(logOutput, "panic in guarded handler"))
		gt.True(t, strings.Contains(logOutput, "test panic with stack"))
		gt.True(t, strings.Contains(logOutput, "goroutine"))
		gt.True(t, strings.Contains(logOutput, "guard_test.go"))
	})

	t.Run("passes context through", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "value")

		_ = async.Guard(ctx, func(ctx context.Context) error {
			gt.Equal(t, ctx.Value(key{}), any("value"))
			return nil
		})
	})

	t.Run("isolates panics across goroutines", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 4)

		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = async.Guard(context.Background(), func(ctx context.Context) error {
					if i%2 == 0 {
						panic("even")
					}
					return nil
				})
			}(i)
		}
		wg.Wait()

		gt.True(t, errors.Is(errs[0], async.ErrPanic))
		gt.NoError(t, errs[1])
		gt.True(t, errors.Is(errs[2], async.ErrPanic))
		gt.NoError(t, errs[3])
	})
}
