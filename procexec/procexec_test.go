package procexec

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFactory_PushResult_RoundTrip(t *testing.T) {
	f := NewMockFactory()
	f.PushResult(Output{Status: exitStatusFromCode(0), Stdout: []byte("hi")})

	child, err := f.NewCommand("cc").Arg("-c").Arg("main.c").Spawn(context.Background())
	require.NoError(t, err)

	out, err := child.WaitWithOutput()
	require.NoError(t, err)
	assert.True(t, out.Status.Success())
	assert.Equal(t, "hi", string(out.Stdout))
	assert.Equal(t, 0, f.Pending())
}

func TestMockFactory_PushFunc_SeesActualArgs(t *testing.T) {
	f := NewMockFactory()
	var seenProgram string
	var seenArgs []string
	f.PushFunc(func(program string, args []string) (Output, error) {
		seenProgram, seenArgs = program, args
		return Output{Status: exitStatusFromCode(1)}, nil
	})

	child, err := f.NewCommand("cc").Args([]string{"-o", "a.out"}).Spawn(context.Background())
	require.NoError(t, err)
	status, err := child.Wait()
	require.NoError(t, err)

	assert.False(t, status.Success())
	assert.Equal(t, 1, status.Code())
	assert.Equal(t, "cc", seenProgram)
	assert.Equal(t, []string{"-o", "a.out"}, seenArgs)
}

func TestMockFactory_PushSpawnError(t *testing.T) {
	f := NewMockFactory()
	f.PushSpawnError(assert.AnError)

	_, err := f.NewCommand("cc").Spawn(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMockFactory_ExhaustedQueuePanics(t *testing.T) {
	f := NewMockFactory()
	assert.Panics(t, func() {
		_, _ = f.NewCommand("cc").Spawn(context.Background())
	})
}

func TestMockFactory_FIFOOrder(t *testing.T) {
	f := NewMockFactory()
	f.PushResult(Output{Status: exitStatusFromCode(1)})
	f.PushResult(Output{Status: exitStatusFromCode(2)})

	first, err := f.NewCommand("cc").Spawn(context.Background())
	require.NoError(t, err)
	second, err := f.NewCommand("cc").Spawn(context.Background())
	require.NoError(t, err)

	s1, _ := first.Wait()
	s2, _ := second.Wait()
	assert.Equal(t, 1, s1.Code())
	assert.Equal(t, 2, s2.Code())
}

func TestMockChild_StreamsStdoutStderr(t *testing.T) {
	f := NewMockFactory()
	f.PushResult(Output{Stdout: []byte("out"), Stderr: []byte("err")})

	child, err := f.NewCommand("cc").Spawn(context.Background())
	require.NoError(t, err)

	out, err := io.ReadAll(child.Stdout())
	require.NoError(t, err)
	assert.Equal(t, "out", string(out))

	errOut, err := io.ReadAll(child.Stderr())
	require.NoError(t, err)
	assert.Equal(t, "err", string(errOut))
}

func TestSyncFactory_SerializesConcurrentNewCommand(t *testing.T) {
	f := NewMockFactory()
	for i := 0; i < 50; i++ {
		f.PushResult(Output{Status: exitStatusFromCode(0)})
	}
	sf := NewSyncFactory(f)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child, err := sf.NewCommand("cc").Spawn(context.Background())
			require.NoError(t, err)
			_, err = child.Wait()
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, f.Pending())
}

func TestExitStatus_SignalVsCode(t *testing.T) {
	killed := exitStatusFromSignal(9)
	assert.False(t, killed.Success())
	assert.Equal(t, 9, killed.Signal())

	clean := exitStatusFromCode(0)
	assert.True(t, clean.Success())

	nonzero := exitStatusFromCode(2)
	assert.False(t, nonzero.Success())
	assert.Equal(t, 2, nonzero.Code())
}

func TestExitStatusFromRaw(t *testing.T) {
	s := ExitStatusFromRaw(RawExitStatus(0))
	assert.True(t, s.Success())
}
