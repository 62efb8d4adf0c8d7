package configuration

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ActiveLevel is the electrical level that switches a relay on
type ActiveLevel string

const (
	ActiveHigh ActiveLevel = "high"
	ActiveLow  ActiveLevel = "low"
)

// IsActiveLow returns true if the relay is switched on by pulling the line low.
// An empty level means active high.
func (l ActiveLevel) IsActiveLow() bool {
	return l == ActiveLow
}

// ActiveLevelHookFunc returns a mapstructure decode hook that accepts
// "high" | "low", 1 | 0 and true | false for ActiveLevel values.
func ActiveLevelHookFunc() mapstructure.DecodeHookFuncType {
	activeLevelType := reflect.TypeOf(ActiveLevel(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != activeLevelType {
			return data, nil
		}

		switch v := data.(type) {
		case bool:
			if v {
				return ActiveHigh, nil
			}
			return ActiveLow, nil
		case int:
			return activeLevelFromInt(v)
		case int64:
			return activeLevelFromInt(int(v))
		case float64:
			return activeLevelFromInt(int(v))
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "high", "1", "":
				return ActiveHigh, nil
			case "low", "0":
				return ActiveLow, nil
			}
			return nil, fmt.Errorf("invalid active level '%s', use one of: high | low", v)
		}
		return data, nil
	}
}

func activeLevelFromInt(v int) (ActiveLevel, error) {
	switch v {
	case 1:
		return ActiveHigh, nil
	case 0:
		return ActiveLow, nil
	}
	return "", fmt.Errorf("invalid active level %d, use one of: 1 | 0", v)
}
