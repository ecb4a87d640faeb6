package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sirene mirrors the registry breaker built by the server.
func sirene(opts ...Option) *Breaker {
	return New("sirene", append([]Option{WithFailureThreshold(5), WithSuccessThreshold(2)}, opts...)...)
}

func failTimes(b *Breaker, n int) {
	for range n {
		b.RecordFailure()
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	b := New("sirene", WithFailureThreshold(0), WithSuccessThreshold(-1))

	assert.Equal(t, "sirene", b.Name())
	assert.Equal(t, StateClosed, b.State())

	failTimes(b, defaultFailureThreshold-1)
	assert.False(t, b.IsOpen())
	_, change := b.RecordFailure()
	assert.True(t, change.Opened)
}

func TestRegistryOutageOpensCircuit(t *testing.T) {
	b := sirene()

	for i := 1; i < 5; i++ {
		useFallback, change := b.RecordFailure()
		require.False(t, useFallback, "failure %d", i)
		require.False(t, change.Opened, "failure %d", i)
	}

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.Equal(t, StateChange{Opened: true}, change)
	assert.Equal(t, StateOpen, b.State())
}

func TestFailureWhileOpenKeepsCounters(t *testing.T) {
	b := sirene()
	failTimes(b, 5)
	require.True(t, b.IsOpen())

	for range 10 {
		useFallback, change := b.RecordFailure()
		assert.True(t, useFallback)
		assert.Equal(t, StateChange{}, change)
	}

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed, "one success is below the threshold")

	b.RecordFailure()
	usePrimary, _ = b.RecordSuccess()
	assert.False(t, usePrimary, "a failure restarts the success count")

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.Equal(t, StateChange{Closed: true}, change)
	assert.False(t, b.IsOpen())
}

func TestSuccessWhileClosedResetsFailures(t *testing.T) {
	b := sirene()

	failTimes(b, 4)
	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.Equal(t, StateChange{}, change)

	failTimes(b, 4)
	assert.False(t, b.IsOpen(), "failures are counted consecutively")
	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestResetClosesAndClearsCounters(t *testing.T) {
	b := sirene(WithFailureThreshold(1))
	b.RecordFailure()
	b.RecordSuccess()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())

	_, change := b.RecordFailure()
	assert.True(t, change.Opened)
	b.RecordSuccess()
	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
}
