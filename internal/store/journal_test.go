package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FogRover/internal/model"
)

func status(at time.Time, v model.VisibilityState, reading int) model.Status {
	return model.Status{RobotID: "rover-01", Time: at, Visibility: v, Reading: reading}
}

func TestJournal_RecordsOnlyTransitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "rover.db")
	j, err := Open(path)
	require.NoError(t, err)

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seq := []model.Status{
		status(t0, model.Clear, 3000),
		status(t0.Add(500*time.Millisecond), model.Clear, 2990),
		status(t0.Add(time.Second), model.LightFog, 1100),
		status(t0.Add(1500*time.Millisecond), model.DenseFog, 600),
		status(t0.Add(2*time.Second), model.DenseFog, 610),
	}
	for _, st := range seq {
		require.NoError(t, j.Publish(st))
	}

	got, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.DenseFog, got[0].Visibility)
	assert.Equal(t, model.LightFog, got[1].Visibility)
	assert.Equal(t, model.Clear, got[2].Visibility)
	assert.Equal(t, 3000, got[2].Reading)

	got, err = j.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 600, got[0].Reading)
	require.NoError(t, j.Close())

	// reopening resumes from the last recorded state
	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()
	require.NoError(t, j.Publish(status(t0.Add(3*time.Second), model.DenseFog, 620)))
	require.NoError(t, j.Publish(status(t0.Add(4*time.Second), model.SystemOff, 90)))
	got, err = j.Recent(10)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, model.SystemOff, got[0].Visibility)
}

func TestJournal_OrdersSubSecondKeys(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "rover.db"))
	require.NoError(t, err)
	defer j.Close()

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.Publish(status(t0.Add(900*time.Millisecond), model.Clear, 3000)))
	require.NoError(t, j.Publish(status(t0.Add(time.Second), model.LightFog, 1000)))
	require.NoError(t, j.Publish(status(t0.Add(1100*time.Millisecond), model.Clear, 2500)))

	got, err := j.Recent(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2500, got[0].Reading)
	assert.Equal(t, 1000, got[1].Reading)
}
