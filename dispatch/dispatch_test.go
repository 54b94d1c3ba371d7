package dispatch

import (
	"context"
	"testing"

	"github.com/crosstool-cache/ccwrap/procexec"
	"github.com/crosstool-cache/ccwrap/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *procexec.MockFactory, *storage.Memory) {
	t.Helper()
	factory := procexec.NewMockFactory()
	backend := storage.NewMemory()
	d := NewDispatcher(backend, factory, zerolog.Nop())
	return d, factory, backend
}

func TestDispatch_MissExecutesAndCaches(t *testing.T) {
	d, factory, _ := newTestDispatcher(t)
	factory.PushResult(procexec.Output{
		Status: procexec.NewExitStatus(0, 0),
		Stdout: []byte("compiled ok"),
	})

	out, err := d.Dispatch(context.Background(), "cc", []string{"-c", "-o", "main.o", "main.c"}, "deadbeef0123")
	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, out.Kind)
	assert.Equal(t, "compiled ok", string(out.Stdout))
	assert.Equal(t, 0, factory.Pending())
}

func TestDispatch_HitNeverCallsFactory(t *testing.T) {
	d, factory, _ := newTestDispatcher(t)
	factory.PushResult(procexec.Output{Status: procexec.NewExitStatus(0, 0), Stdout: []byte("first run")})

	key := "cafebabe0001"
	first, err := d.Dispatch(context.Background(), "cc", []string{"-c", "main.c"}, key)
	require.NoError(t, err)
	require.Equal(t, OutcomeExecuted, first.Kind)

	// No further expectations pushed: if Dispatch touched procexec again,
	// MockFactory would panic on the exhausted queue.
	second, err := d.Dispatch(context.Background(), "cc", []string{"-c", "main.c"}, key)
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, second.Kind)
	assert.Equal(t, "first run", string(second.Stdout))
}

func TestDispatch_ParseErrorNeverTouchesFactoryOrStorage(t *testing.T) {
	d, factory, backend := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), "cc", []string{"-o"}, "cafebabe0002")
	assert.Error(t, err)
	assert.Equal(t, 0, factory.Pending())

	res := backend.Get(context.Background(), "cafebabe0002")
	assert.Equal(t, storage.Miss, res.Outcome)
}

func TestDispatch_ReemitUsesNormalizedArgv(t *testing.T) {
	d, factory, _ := newTestDispatcher(t)
	var seenArgs []string
	factory.PushFunc(func(_ string, args []string) (procexec.Output, error) {
		seenArgs = args
		return procexec.Output{Status: procexec.NewExitStatus(0, 0)}, nil
	})

	// -I is CanBeSeparated (concatenated by default); observed
	// concatenated here, PreferSeparated re-emission should split it.
	_, err := d.Dispatch(context.Background(), "cc", []string{"-Iinclude", "-c", "main.c"}, "cafebabe0003")
	require.NoError(t, err)
	assert.Equal(t, []string{"-I", "include", "-c", "main.c"}, seenArgs)
}
