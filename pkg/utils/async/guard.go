package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ErrPanic is wrapped by Guard when the handler panics
var ErrPanic = goerr.New("panic in guarded handler")

// Guard executes handler in the calling goroutine and converts a panic into
// an error, so that one failing unit of a fan-out can not take down its
// siblings or the process.
//
// Behavior:
//   - Returns the handler's error as is
//   - Recovers from panics, logs them with the stack trace and returns an
//     error wrapping ErrPanic
func Guard(ctx context.Context, handler func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			ctxlog.From(ctx).Error("panic in guarded handler",
				"recover", r,
				"stack", string(stack))
			err = goerr.Wrap(ErrPanic, "recovered", goerr.V("recover", r))
		}
	}()

	return handler(ctx)
}
