package procexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// mockExpectation is one scripted response to a Spawn call, mirroring
// mock_command.rs's ChildOrCall: either a canned result or a callback
// that computes one from the program and args actually passed.
type mockExpectation struct {
	call      func(program string, args []string) (Output, error)
	spawnErr  error
}

// MockFactory is a Factory that hands out canned results from a FIFO
// queue instead of spawning real processes, the direct analogue of
// mock_command.rs's MockCommandCreator. Expectations are consumed in the
// order they were pushed; Spawn panics if the queue runs dry, since a
// test that over-pulls has a wrong call count, not a value to fall back
// on.
type MockFactory struct {
	mu    sync.Mutex
	queue []mockExpectation
}

// NewMockFactory returns an empty MockFactory. Callers push expected
// results before exercising the code under test.
func NewMockFactory() *MockFactory {
	return &MockFactory{}
}

// PushResult queues a canned Output (and nil error) for the next Spawn.
func (f *MockFactory) PushResult(out Output) {
	f.push(mockExpectation{call: func(string, []string) (Output, error) { return out, nil }})
}

// PushSpawnError queues a Spawn-time failure (e.g. "executable not
// found") for the next call — distinct from a scripted nonzero
// ExitStatus, which is a successful spawn that ran and failed.
func (f *MockFactory) PushSpawnError(err error) {
	f.push(mockExpectation{spawnErr: err})
}

// PushFunc queues a callback that computes the result from the actual
// program and arguments passed to Spawn, for tests that need to assert
// on, or vary behavior by, the exact invocation.
func (f *MockFactory) PushFunc(fn func(program string, args []string) (Output, error)) {
	f.push(mockExpectation{call: fn})
}

func (f *MockFactory) push(e mockExpectation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, e)
}

func (f *MockFactory) pop(program string, args []string) (Output, error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		panic(fmt.Sprintf("procexec: MockFactory exhausted, unexpected call to %s %v", program, args))
	}
	e := f.queue[0]
	f.queue = f.queue[1:]
	if e.spawnErr != nil {
		return Output{}, nil, e.spawnErr
	}
	out, err := e.call(program, args)
	return out, err, nil
}

// Pending reports how many scripted results remain unconsumed, for tests
// that want to assert every expectation was used.
func (f *MockFactory) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

func (f *MockFactory) NewCommand(program string) CommandBuilder {
	return &mockCommandBuilder{factory: f, program: program}
}

type mockCommandBuilder struct {
	factory *MockFactory
	program string
	args    []string
	dir     string
}

func (b *mockCommandBuilder) Arg(arg string) CommandBuilder {
	b.args = append(b.args, arg)
	return b
}

func (b *mockCommandBuilder) Args(args []string) CommandBuilder {
	b.args = append(b.args, args...)
	return b
}

func (b *mockCommandBuilder) CurrentDir(dir string) CommandBuilder {
	b.dir = dir
	return b
}

// Stdio redirection is accepted but not modeled — a MockFactory scripts
// results, not byte-level stream plumbing.
func (b *mockCommandBuilder) Stdin(StdioMode) CommandBuilder  { return b }
func (b *mockCommandBuilder) Stdout(StdioMode) CommandBuilder { return b }
func (b *mockCommandBuilder) Stderr(StdioMode) CommandBuilder { return b }

func (b *mockCommandBuilder) Spawn(context.Context) (Child, error) {
	out, waitErr, spawnErr := b.factory.pop(b.program, b.args)
	if spawnErr != nil {
		return nil, spawnErr
	}
	return &mockChild{out: out, waitErr: waitErr}, nil
}

type mockChild struct {
	out     Output
	waitErr error
}

func (c *mockChild) Stdin() io.WriteCloser { return nopWriteCloser{io.Discard} }
func (c *mockChild) Stdout() io.ReadCloser { return io.NopCloser(bytes.NewReader(c.out.Stdout)) }
func (c *mockChild) Stderr() io.ReadCloser { return io.NopCloser(bytes.NewReader(c.out.Stderr)) }

func (c *mockChild) Wait() (ExitStatus, error) {
	return c.out.Status, c.waitErr
}

func (c *mockChild) WaitWithOutput() (Output, error) {
	return c.out, c.waitErr
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
