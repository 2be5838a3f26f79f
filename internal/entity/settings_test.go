package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, FrequencyWeekly, ParseFrequency("weekly"))
	assert.Equal(t, FrequencyOff, ParseFrequency("  OFF "))
	assert.Equal(t, FrequencyDaily, ParseFrequency("daily"))

	// Valor desconhecido (ou vazio) falha aberto para daily
	assert.Equal(t, FrequencyDaily, ParseFrequency("hourly"))
	assert.Equal(t, FrequencyDaily, ParseFrequency(""))
}

func TestDateOnly(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")
	late := time.Date(2025, 3, 12, 23, 45, 0, 0, ny)

	got := DateOnly(late)

	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}
