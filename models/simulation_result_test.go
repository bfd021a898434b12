package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulationStatusFrom(t *testing.T) {
	cases := map[string]SimulationStatus{
		"queued":     SimulationQueued,
		"pending":    SimulationQueued,
		"running":    SimulationRunning,
		"processing": SimulationRunning,
		"done":       SimulationDone,
		"completed":  SimulationDone,
		"success":    SimulationDone,
		"failed":     SimulationFailed,
		"error":      SimulationFailed,
		"bogus":      SimulationUnknownStatus,
		"":           SimulationUnknownStatus,
	}
	for input, expected := range cases {
		assert.Equal(t, expected, SimulationStatusFrom(input), input)
	}
}

func TestSimulationStatusRoundTrip(t *testing.T) {
	for _, status := range []SimulationStatus{
		SimulationQueued, SimulationRunning, SimulationDone, SimulationFailed,
	} {
		assert.Equal(t, status, SimulationStatusFrom(status.String()))
	}
}

func TestSimulationStatusIsTerminal(t *testing.T) {
	assert.False(t, SimulationQueued.IsTerminal())
	assert.False(t, SimulationRunning.IsTerminal())
	assert.True(t, SimulationDone.IsTerminal())
	assert.True(t, SimulationFailed.IsTerminal())
	assert.False(t, SimulationUnknownStatus.IsTerminal())
}
