package dump

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithProgress_ReportsBytes(t *testing.T) {
	path := writeTempDump(t, `{"Foo": {"1": {"size": 100}}}`)

	var calls int
	var lastRead, lastTotal int64
	store, err := LoadWithProgress(path, func(bytesRead, totalBytes int64) {
		calls++
		lastRead, lastTotal = bytesRead, totalBytes
	})

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Greater(t, calls, 0)
	assert.Equal(t, lastTotal, lastRead, "final callback reports completion")
	assert.Greater(t, lastTotal, int64(0))
}

func TestAsyncLoader_StartWait(t *testing.T) {
	path := writeTempDump(t, `{"Foo": {"1": {"size": 100}}}`)
	loader := NewAsyncLoader()

	require.NoError(t, loader.Start(path, nil))
	store, err := loader.Wait()

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, 1, store.TotalObjects)
}

func TestAsyncLoader_PropagatesLoadError(t *testing.T) {
	loader := NewAsyncLoader()

	require.NoError(t, loader.Start("/nonexistent/dump.json", nil))
	store, err := loader.Wait()

	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestAsyncLoader_SerializesLoads(t *testing.T) {
	path := writeTempDump(t, `{"Foo": {"1": {"size": 100}}}`)
	loader := NewAsyncLoader()

	// Block the first load inside its progress callback until released,
	// so the second Start reliably observes it in flight.
	release := make(chan struct{})
	var blocked atomic.Bool
	require.NoError(t, loader.Start(path, func(bytesRead, totalBytes int64) {
		if blocked.CompareAndSwap(false, true) {
			<-release
		}
	}))

	err := loader.Start(path, nil)
	assert.ErrorIs(t, err, ErrLoadInProgress)

	close(release)
	_, err = loader.Wait()
	require.NoError(t, err)

	// After Wait the loader is free again.
	require.NoError(t, loader.Start(path, nil))
	_, err = loader.Wait()
	assert.NoError(t, err)
}

func TestAsyncLoader_WaitWithoutStart(t *testing.T) {
	loader := NewAsyncLoader()
	_, err := loader.Wait()
	assert.Error(t, err)
}
