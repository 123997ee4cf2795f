package lora

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FogRover/internal/device"
	"FogRover/internal/model"
	"FogRover/internal/parser"
)

// pipeDevice is an in-memory line device.
type pipeDevice struct {
	in     chan string
	mu     sync.Mutex
	out    []string
	closed chan struct{}
	once   sync.Once
}

func newPipeDevice() *pipeDevice {
	return &pipeDevice{in: make(chan string, 8), closed: make(chan struct{})}
}

func (d *pipeDevice) ReadLine(timeout time.Duration) (string, error) {
	select {
	case l := <-d.in:
		return l, nil
	case <-d.closed:
		return "", device.ErrNotOpen
	case <-time.After(timeout):
		return "", device.ErrTimeout
	}
}

func (d *pipeDevice) WriteLine(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = append(d.out, s)
	return nil
}

func (d *pipeDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

func (d *pipeDevice) written() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.out...)
}

type intentRecorder struct {
	mu  sync.Mutex
	got []model.DriveIntent
}

func (r *intentRecorder) Submit(i model.DriveIntent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, i)
}

func (r *intentRecorder) intents() []model.DriveIntent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.DriveIntent(nil), r.got...)
}

func TestLink_HandleLine(t *testing.T) {
	dev := newPipeDevice()
	rec := &intentRecorder{}
	l := NewLink("rover-01", dev, parser.NewCSVParser(), rec)

	assert.True(t, l.HandleLine("CTRL,rover-01,F\r"))
	assert.True(t, l.HandleLine("CTRL,*,S"))
	assert.False(t, l.HandleLine("CTRL,rover-02,B"))
	assert.False(t, l.HandleLine("garbage"))
	assert.False(t, l.HandleLine(""))

	assert.Equal(t, []model.DriveIntent{model.Forward, model.Stop}, rec.intents())
	assert.Equal(t, []string{"ACK,F", "ACK,S"}, dev.written())
}

func TestLink_ReaderLoop(t *testing.T) {
	dev := newPipeDevice()
	rec := &intentRecorder{}
	l := NewLink("rover-01", dev, parser.NewJSONParser(), rec)
	l.Start()

	dev.in <- `{"robot_id":"rover-01","code":"L"}`
	require.Eventually(t, func() bool { return len(rec.intents()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, model.Left, rec.intents()[0])

	l.Stop()
	require.Len(t, dev.written(), 1)
	assert.JSONEq(t, `{"code":"L","ack":true}`, dev.written()[0])
}

func TestLink_PublishAndRemoteDecode(t *testing.T) {
	dev := newPipeDevice()
	p := parser.NewCSVParser()
	l := NewLink("rover-01", dev, p, &intentRecorder{})

	st := model.Status{RobotID: "rover-01", Tick: 7, Visibility: model.DenseFog, Reading: 640, DistanceCM: 35, Alert: true, Intent: model.Forward}
	require.NoError(t, l.Publish(st))
	out := dev.written()
	require.Len(t, out, 1)
	assert.Equal(t, "rover-01,7,DENSE_FOG,640,35.0,0,1,F", out[0])

	r := NewRemote(newPipeDevice(), p)
	up, err := r.Decode(out[0])
	require.NoError(t, err)
	require.NotNil(t, up.Status)
	assert.Nil(t, up.Ack)
	assert.Equal(t, st, *up.Status)

	up, err = r.Decode("ACK,F")
	require.NoError(t, err)
	require.NotNil(t, up.Ack)
	assert.Equal(t, "F", up.Ack.Code)

	_, err = r.Decode("what")
	assert.Error(t, err)
}

func TestRemote_Send(t *testing.T) {
	dev := newPipeDevice()
	r := NewRemote(dev, parser.NewCSVParser())
	require.NoError(t, r.Send(Broadcast, model.Backward))
	assert.Equal(t, []string{"CTRL,*,B"}, dev.written())
}
