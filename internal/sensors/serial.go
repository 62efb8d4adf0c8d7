package sensors

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"go.bug.st/serial"
)

const DefaultBaudRate = 115200

var ErrNoSample = errors.New("no sample received yet")

// SerialSensor reads newline separated raw values from a microcontroller
// attached to a serial port. The port is opened on the first read and
// continuously drained in the background, ReadRaw returns the newest value.
type SerialSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	mu      sync.Mutex
	port    io.ReadCloser
	latest  float64
	hasData bool
	readErr error
}

func NewSerialSensor(config configuration.SensorConfig) *SerialSensor {
	return &SerialSensor{
		Config: config,
	}
}

func (sensor *SerialSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *SerialSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *SerialSensor) ReadRaw() (float64, error) {
	if err := sensor.connect(); err != nil {
		return 0, err
	}

	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	if sensor.readErr != nil {
		return 0, sensor.readErr
	}
	if !sensor.hasData {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), ErrNoSample)
	}
	return sensor.latest, nil
}

// Close stops reading and closes the serial port
func (sensor *SerialSensor) Close() error {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	if sensor.port == nil {
		return nil
	}
	err := sensor.port.Close()
	sensor.port = nil
	return err
}

func (sensor *SerialSensor) connect() error {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	if sensor.port != nil {
		return nil
	}

	baudRate := sensor.Config.Serial.BaudRate
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(sensor.Config.Serial.Port, &serial.Mode{
		BaudRate: baudRate,
	})
	if err != nil {
		return fmt.Errorf("sensor %s: failed to open serial port %s: %w", sensor.GetId(), sensor.Config.Serial.Port, err)
	}

	sensor.attach(port)
	return nil
}

// attach starts draining the given reader in the background.
// Must be called with mu held.
func (sensor *SerialSensor) attach(port io.ReadCloser) {
	sensor.port = port
	sensor.readErr = nil
	sensor.hasData = false
	go sensor.readLines(port)
}

func (sensor *SerialSensor) readLines(port io.ReadCloser) {
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := parseSerialLine(line)
		if err != nil {
			ui.Debug("sensor %s: skipping line '%s': %v", sensor.GetId(), line, err)
			continue
		}

		sensor.mu.Lock()
		sensor.latest = value
		sensor.hasData = true
		sensor.mu.Unlock()
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}

	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	if sensor.port != port {
		// closed or replaced by us
		return
	}
	sensor.readErr = fmt.Errorf("sensor %s: serial port closed: %w", sensor.GetId(), err)
	_ = sensor.port.Close()
	sensor.port = nil
}

// parseSerialLine accepts a plain value or "<timestamp>,<value>[,...]" lines,
// in which case the second field is used.
func parseSerialLine(line string) (float64, error) {
	parts := strings.Split(line, ",")
	field := parts[0]
	if len(parts) > 1 {
		field = parts[1]
	}
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}
