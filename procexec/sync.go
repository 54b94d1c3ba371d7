package procexec

import "sync"

// SyncFactory guards a single inner Factory behind a mutex so it can be
// shared across worker goroutines, the Go analogue of mock_command.rs's
// impl<T: CommandCreator> CommandCreatorSync for Arc<Mutex<T>> — any
// Factory, mock or real, becomes safe for concurrent use by wrapping it
// here rather than by each implementation managing its own locking.
type SyncFactory struct {
	mu    sync.Mutex
	inner Factory
}

// NewSyncFactory wraps inner for concurrent use.
func NewSyncFactory(inner Factory) *SyncFactory {
	return &SyncFactory{inner: inner}
}

func (f *SyncFactory) NewCommand(program string) CommandBuilder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.NewCommand(program)
}
