package util

import (
	"bytes"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoAndError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	Info("bridge on %s", "/dev/ttyUSB0")
	Error("lost %d frames", 3)
	assert.Contains(t, buf.String(), "[INFO] ")
	assert.Contains(t, buf.String(), "| bridge on /dev/ttyUSB0")
	assert.Contains(t, buf.String(), "[ERROR] ")
	assert.Contains(t, buf.String(), "| lost 3 frames")
}

func TestWaitForPaths(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(present, nil, 0o644))

	assert.NoError(t, waitForPaths(50*time.Millisecond, present))
	assert.Error(t, waitForPaths(30*time.Millisecond, present, filepath.Join(dir, "missing")))
}

func TestSocatPair(t *testing.T) {
	if _, err := exec.LookPath("socat"); err != nil {
		t.Skip("socat not installed")
	}
	dir := t.TempDir()
	left, right := filepath.Join(dir, "rover"), filepath.Join(dir, "bridge")

	m := NewSocatManager()
	require.NoError(t, m.CreatePair(left, right, 2*time.Second))
	m.Cleanup()
	m.Cleanup()

	_, err := os.Lstat(left)
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, m.CreatePair(left, right, time.Second))
}
