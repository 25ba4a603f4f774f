package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultOptions, Options{}.withDefaults())

	custom := Options{MaxIdleConns: 1, MaxOpenConns: 2, ConnMaxLifetime: time.Minute, SlowThreshold: time.Millisecond}
	assert.Equal(t, custom, custom.withDefaults())
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty connection string")
}
