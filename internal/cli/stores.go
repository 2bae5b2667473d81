package cli

import (
	"context"
	"fmt"

	"github.com/wayfare/wayfare/pkg/config"
	"github.com/wayfare/wayfare/pkg/schedule"
	"github.com/wayfare/wayfare/pkg/session"
)

// newScheduleStore builds the schedule store selected by the config.
func newScheduleStore(ctx context.Context, cfg config.Config) (schedule.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return schedule.NewMemoryStore(), nil
	case "mongo":
		return schedule.NewMongoStore(ctx, schedule.MongoConfig{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q (supported: memory, mongo)", cfg.Store.Backend)
	}
}

// newSessionStore builds the session store selected by the config.
func newSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q (supported: memory, redis)", cfg.Session.Backend)
	}
}
