package rationals

import (
	"context"
	"sort"
)

// MockSequence is a Sequence returning canned terms. It is exported so that
// tests in other packages can drive the CLI, orchestrator and server without
// real enumerators.
type MockSequence struct {
	// KindName is returned by Kind; "mock" when empty.
	KindName string
	// Terms are returned by Next in order; Next fails with Err once they run out.
	Terms []Term
	// Err is returned by Skip, and by Next after Terms is consumed.
	Err error
	// Fn, when set, replaces the Skip behaviour.
	Fn func(ctx context.Context, n uint64) (Term, error)

	pos uint64
}

// Kind returns the configured kind name.
func (m *MockSequence) Kind() string {
	if m.KindName == "" {
		return "mock"
	}
	return m.KindName
}

// Next returns the next canned term.
func (m *MockSequence) Next() (Term, error) {
	if m.pos >= uint64(len(m.Terms)) {
		return Term{}, m.Err
	}
	t := m.Terms[m.pos]
	m.pos++
	return t, nil
}

// Index returns the position in Terms.
func (m *MockSequence) Index() uint64 { return m.pos }

// Reset rewinds to the first canned term.
func (m *MockSequence) Reset() { m.pos = 0 }

// Skip calls Fn when set; otherwise it returns Err, or the canned term at n,
// or a zero term with index n.
func (m *MockSequence) Skip(ctx context.Context, n uint64, progress ProgressReporter) (Term, error) {
	if progress != nil {
		progress(1.0)
	}
	if m.Fn != nil {
		return m.Fn(ctx, n)
	}
	if m.Err != nil {
		return Term{}, m.Err
	}
	m.pos = n + 1
	if n < uint64(len(m.Terms)) {
		return m.Terms[n], nil
	}
	return Term{Index: n}, nil
}

// TestFactory is a Factory serving prepared sequences, for tests.
type TestFactory struct {
	sequences map[string]func() Sequence
}

// NewTestFactory creates a factory whose kinds return the given sequences.
// Each Create call hands out the same instance for a name.
func NewTestFactory(sequences map[string]Sequence) *TestFactory {
	f := &TestFactory{sequences: make(map[string]func() Sequence)}
	for name, seq := range sequences {
		f.sequences[name] = func() Sequence { return seq }
	}
	return f
}

// Create returns the sequence registered under name.
func (f *TestFactory) Create(name string) (Sequence, error) {
	creator, ok := f.sequences[name]
	if !ok {
		return nil, &UnknownKindError{Name: name}
	}
	return creator(), nil
}

// List returns the registered names, sorted.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.sequences))
	for name := range f.sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (f *TestFactory) Has(name string) bool {
	_, ok := f.sequences[name]
	return ok
}

// Register adds a creator.
func (f *TestFactory) Register(name string, creator func() Sequence) error {
	f.sequences[name] = creator
	return nil
}

var _ Factory = (*TestFactory)(nil)
