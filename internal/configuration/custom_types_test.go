package configuration

import (
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
)

func TestActiveLevelHookFunc(t *testing.T) {
	type TestConfig struct {
		ActiveLevel ActiveLevel `mapstructure:"activeLevel"`
	}

	tests := []struct {
		name     string
		input    interface{}
		expected ActiveLevel
	}{
		{name: "string high", input: "high", expected: ActiveHigh},
		{name: "string LOW", input: "LOW", expected: ActiveLow},
		{name: "int 0", input: 0, expected: ActiveLow},
		{name: "int 1", input: 1, expected: ActiveHigh},
		{name: "bool false", input: false, expected: ActiveLow},
		{name: "bool true", input: true, expected: ActiveHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			var result TestConfig
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: ActiveLevelHookFunc(),
				Result:     &result,
			})
			assert.NoError(t, err)

			// WHEN
			err = decoder.Decode(map[string]interface{}{"activeLevel": tt.input})

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result.ActiveLevel)
		})
	}
}

func TestActiveLevelHookFunc_Invalid(t *testing.T) {
	// GIVEN
	type TestConfig struct {
		ActiveLevel ActiveLevel `mapstructure:"activeLevel"`
	}
	var result TestConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: ActiveLevelHookFunc(),
		Result:     &result,
	})
	assert.NoError(t, err)

	// WHEN
	err = decoder.Decode(map[string]interface{}{"activeLevel": "sideways"})

	// THEN
	assert.Error(t, err)
}

func TestActiveLevel_IsActiveLow(t *testing.T) {
	assert.True(t, ActiveLow.IsActiveLow())
	assert.False(t, ActiveHigh.IsActiveLow())
	assert.False(t, ActiveLevel("").IsActiveLow())
}
