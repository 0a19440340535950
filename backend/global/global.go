// Package global holds the process-wide handles set up by initialize.
package global

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	// Logger discards everything until initialize.NewLogger replaces it.
	Logger = zerolog.Nop()
	// Rdb is set only when backend.redis.addr is configured.
	Rdb *redis.Client
)
