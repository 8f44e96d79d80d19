package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concurso-backend/internal/camera"
)

func TestStreamManagerSingleStream(t *testing.T) {
	var opened []*fakeDevice
	m := NewStreamManager(func(camera.OpenOptions) (camera.Device, error) {
		dev := newFakeDevice()
		opened = append(opened, dev)
		return dev, nil
	})

	first, err := m.Acquire(camera.OpenOptions{})
	require.NoError(t, err)
	second, err := m.Acquire(camera.OpenOptions{})
	require.NoError(t, err)

	assert.True(t, opened[0].isClosed())
	assert.False(t, opened[1].isClosed())
	assert.NotSame(t, first, second)
	assert.Equal(t, second, m.Active())
}

func TestStreamManagerReleaseIdempotent(t *testing.T) {
	m := NewStreamManager(func(camera.OpenOptions) (camera.Device, error) {
		return newFakeDevice(), nil
	})

	dev, err := m.Acquire(camera.OpenOptions{})
	require.NoError(t, err)

	m.Release(dev)
	m.Release(dev)
	m.Release(nil)

	assert.Nil(t, m.Active())
}

func TestStreamManagerReleaseForeignDevice(t *testing.T) {
	m := NewStreamManager(func(camera.OpenOptions) (camera.Device, error) {
		return newFakeDevice(), nil
	})

	held, err := m.Acquire(camera.OpenOptions{})
	require.NoError(t, err)

	foreign := newFakeDevice()
	m.Release(foreign)

	// The held stream survives a stale release from an older session.
	assert.Equal(t, held, m.Active())
	assert.True(t, foreign.isClosed())
}
