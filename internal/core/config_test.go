package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FogRover/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rover.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
robot:
  id: rover-07
visibility:
  fog: 900
lora:
  device: /dev/serial0
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "rover-07", cfg.Robot.ID)
	assert.Equal(t, "csv", cfg.Robot.WireFormat)
	assert.Equal(t, 2000, cfg.Visibility.Clear)
	assert.Equal(t, 900, cfg.Visibility.Fog)
	assert.Equal(t, 20, cfg.Visibility.Samples)
	assert.Equal(t, "/dev/serial0", cfg.LoRa.Device)
	assert.Equal(t, 9600, cfg.LoRa.Baud)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "robot: [unclosed"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "visibility:\n  clear: 500\n  fog: 800\n"))
	assert.ErrorContains(t, err, "clear > fog > off")

	_, err = LoadConfig(writeConfig(t, "hardware:\n  mode: pi\n"))
	assert.ErrorContains(t, err, "motor_pins")
}

func TestOverrides_Apply(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Hardware.Mode = model.HardwarePi
	cfg.Hardware.MotorPins = []string{"12", "13", "18", "19"}
	cfg.Hardware.TrigPin, cfg.Hardware.EchoPin = "23", "24"
	cfg.Hardware.BridgeDevice = "/dev/ttyUSB0"

	require.NoError(t, Overrides{Sim: true, Addr: ":9090"}.Apply(&cfg))
	assert.Equal(t, model.HardwareSim, cfg.Hardware.Mode)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)

	require.NoError(t, Overrides{}.Apply(&cfg))
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "rover.yml"))
	require.NoError(t, err)
	assert.Equal(t, "rover-01", cfg.Robot.ID)
	assert.Equal(t, model.HardwareSim, cfg.Hardware.Mode)
	assert.Equal(t, []string{"12", "13", "18", "19"}, cfg.Hardware.MotorPins)
	assert.Equal(t, "data/journal.db", cfg.HTTP.JournalPath)
}
