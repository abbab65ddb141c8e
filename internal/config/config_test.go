package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusinessLocation(t *testing.T) {
	cfg := &Config{BusinessTZOffset: 3}

	loc := cfg.BusinessLocation()
	now := time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC)

	// UTC 22:30 -> UTC+3'te ertesi gün 01:30
	local := now.In(loc)
	assert.Equal(t, 11, local.Day())
	assert.Equal(t, 1, local.Hour())

	_, offset := local.Zone()
	assert.Equal(t, 3*3600, offset)
}

func TestBusinessLocationNegativeOffset(t *testing.T) {
	cfg := &Config{BusinessTZOffset: -5}

	now := time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)
	local := now.In(cfg.BusinessLocation())

	// UTC 02:00 -> UTC-5'te bir önceki gün 21:00
	assert.Equal(t, 9, local.Day())
	assert.Equal(t, 21, local.Hour())
}
