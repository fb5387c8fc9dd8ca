package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
)

const hookTimeout = 10 * time.Second

// runHook runs fn in the background with its own deadline. Failures and
// panics are logged and never reach the caller.
func runHook(log *slog.Logger, name string, user *User, fn func(context.Context, *User) error) {
	if fn == nil || user == nil {
		return
	}

	u := *user
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error(name+" hook panicked",
					logger.UserID(u.ID),
					slog.Any("panic", r),
					logger.Component("auth"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()

		if err := fn(ctx, &u); err != nil {
			log.Error(name+" hook failed",
				logger.UserID(u.ID),
				logger.Error(err),
				logger.Component("auth"),
			)
		}
	}()
}
