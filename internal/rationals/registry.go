package rationals

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates sequences by integer kind name.
type Factory interface {
	// Create returns a fresh sequence positioned at index 0.
	// Sequences are stateful, so every call returns a new instance.
	Create(name string) (Sequence, error)

	// List returns the registered kind names in sorted order.
	List() []string

	// Has reports whether name is registered.
	Has(name string) bool

	// Register adds or replaces a kind.
	Register(name string, creator func() Sequence) error
}

// DefaultFactory is the thread-safe registry of sequence creators.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Sequence
}

// NewDefaultFactory creates a factory with every built-in integer kind
// registered:
//   - "int", "int8", "int16", "int32", "int64"
//   - "uint", "uint8", "uint16", "uint32", "uint64", "uintptr"
//   - "int128", "uint128", backed by lukechampine.com/uint128
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{creators: make(map[string]func() Sequence)}

	registerKind[int](f, "int")
	registerKind[int8](f, "int8")
	registerKind[int16](f, "int16")
	registerKind[int32](f, "int32")
	registerKind[int64](f, "int64")
	registerKind[uint](f, "uint")
	registerKind[uint8](f, "uint8")
	registerKind[uint16](f, "uint16")
	registerKind[uint32](f, "uint32")
	registerKind[uint64](f, "uint64")
	registerKind[uintptr](f, "uintptr")
	registerWideKind(f, "int128")
	registerWideKind(f, "uint128")

	return f
}

func registerKind[T Integer](f *DefaultFactory, name string) {
	_ = f.Register(name, func() Sequence { return NewSequence[T](name) })
}

func registerWideKind(f *DefaultFactory, name string) {
	_ = f.Register(name, func() Sequence {
		seq, _ := NewWideSequence(name)
		return seq
	})
}

// Register adds a kind. An existing kind with the same name is replaced.
func (f *DefaultFactory) Register(name string, creator func() Sequence) error {
	if name == "" {
		return errors.New("kind name must not be empty")
	}
	if creator == nil {
		return errors.New("creator must not be nil")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	return nil
}

// Create returns a fresh sequence for name, or an *UnknownKindError.
func (f *DefaultFactory) Create(name string) (Sequence, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &UnknownKindError{Name: name}
	}
	return creator(), nil
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// List returns the registered kind names, sorted.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

var _ Factory = (*DefaultFactory)(nil)
