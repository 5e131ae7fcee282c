package conf

// Copyright (c) 2025 Colin McRae

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()
	require.Equal(t, uint32(0), params.SmoothnessBound)
	require.Equal(t, int64(0), params.RelationAttempts)
	require.Equal(t, defaultTrivialRetries, params.TrivialRetries)
	require.Equal(t, defaultBoundEscalations, params.BoundEscalations)
	require.GreaterOrEqual(t, params.SampleWorkers, 1)
	require.LessOrEqual(t, params.SampleWorkers, maxDefaultWorkers)
}

func TestNewParams(t *testing.T) {
	const config = `
smoothnessbound: 500
relationattempts: 25000
sampleworkers: 2
`
	vip := viper.New()
	vip.SetConfigType("yaml")
	require.NoError(t, vip.ReadConfig(bytes.NewBufferString(config)))

	params, err := NewParams(vip)
	require.NoError(t, err)

	// Configured fields are taken as given.
	require.Equal(t, uint32(500), params.SmoothnessBound)
	require.Equal(t, int64(25000), params.RelationAttempts)
	require.Equal(t, 2, params.SampleWorkers)

	// Unset fields fall back to the defaults.
	require.Equal(t, defaultTrivialRetries, params.TrivialRetries)
	require.Equal(t, defaultBoundEscalations, params.BoundEscalations)
}

func TestFillDefaultsKeepsNonZeroFields(t *testing.T) {
	params := Params{
		SmoothnessBound:  30,
		RelationAttempts: 10,
		TrivialRetries:   1,
		BoundEscalations: 1,
		SampleWorkers:    3,
	}
	params.FillDefaults()
	require.Equal(t, uint32(30), params.SmoothnessBound)
	require.Equal(t, int64(10), params.RelationAttempts)
	require.Equal(t, 1, params.TrivialRetries)
	require.Equal(t, 1, params.BoundEscalations)
	require.Equal(t, 3, params.SampleWorkers)
}
