package postgres

import (
	"context"
	"io"
	"testing"

	"payzoll-audit/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewPool_RejectsBadConfig(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "audit",
		Password: "secret",
		DBName:   "payzoll",
		SSLMode:  "sometimes",
	}

	_, err := NewPool(context.Background(), cfg, zerolog.New(io.Discard))
	assert.ErrorContains(t, err, "parsing database config")
}
