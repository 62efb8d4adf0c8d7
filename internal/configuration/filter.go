package configuration

const (
	// FilterModeWraparound recomputes the estimate each time the buffer wraps around
	FilterModeWraparound = "wraparound"
	// FilterModeRolling recomputes the estimate on every sample once the buffer has been filled
	FilterModeRolling = "rolling"
)

type FilterConfig struct {
	BufferSize      int     `json:"bufferSize"`
	TrimLow         int     `json:"trimLow"`
	TrimHigh        int     `json:"trimHigh"`
	SmoothingFactor float64 `json:"smoothingFactor"`
	Mode            string  `json:"mode"`
}
