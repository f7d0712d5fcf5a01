// Package testdump compares values against golden files kept under testdata.
//
// A missing golden file is created from the received value. Run the tests
// with -update to overwrite existing ones.
package testdump

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

var update = flag.Bool("update", false, "update the dump file")

type Hook[T any] func(S[T]) S[T]

type Hooks[T any] []Hook[T]

func (hooks Hooks[T]) Apply(s S[T]) S[T] {
	// Reverse the hooks so that it applies from left to right.
	for i := 0; i < len(hooks); i++ {
		h := hooks[len(hooks)-i-1]
		s = h(s)
	}

	return s
}

type S[T any] interface {
	Marshal(T) ([]byte, error)
	Unmarshal([]byte) (T, error)
	Compare(snapshot, received T) error
}

type ReadWriter interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// Snapshot writes the marshalled t through rw, then compares what rw holds
// against it.
func Snapshot[T any](rw ReadWriter, t T, s S[T], hooks ...Hook[T]) error {
	s = Hooks[T](hooks).Apply(s)

	b, err := s.Marshal(t)
	if err != nil {
		return err
	}

	if err := rw.Write(b); err != nil {
		return err
	}

	// Both sides go through Unmarshal so that only what survives the file
	// format is compared.
	received, err := s.Unmarshal(b)
	if err != nil {
		return err
	}

	b, err = rw.Read()
	if err != nil {
		return err
	}

	snapshot, err := s.Unmarshal(b)
	if err != nil {
		return err
	}

	return s.Compare(snapshot, received)
}

func MarshalHook[T any](hook func(T) (T, error)) Hook[T] {
	return func(s S[T]) S[T] {
		return &marshalHook[T]{
			S:    s,
			hook: hook,
		}
	}
}

func CompareHook[T any](hook func(snapshot T, received T) error) Hook[T] {
	return func(s S[T]) S[T] {
		return &compareHook[T]{
			S:    s,
			hook: hook,
		}
	}
}

type marshalHook[T any] struct {
	S[T]
	hook func(t T) (T, error)
}

func (m *marshalHook[T]) Marshal(t T) ([]byte, error) {
	t, err := m.hook(t)
	if err != nil {
		return nil, err
	}

	return m.S.Marshal(t)
}

type compareHook[T any] struct {
	S[T]
	hook func(snapshot, received T) error
}

func (m *compareHook[T]) Compare(snapshot, received T) error {
	if err := m.hook(snapshot, received); err != nil {
		return err
	}

	return m.S.Compare(snapshot, received)
}

type File struct {
	Name string
}

func NewFile(name string) *File {
	return &File{
		Name: name,
	}
}

func (rw *File) Read() ([]byte, error) {
	return os.ReadFile(rw.Name)
}

// Write creates the file when it does not exist yet, or overwrites it with
// -update.
func (rw *File) Write(b []byte) error {
	_, err := os.Stat(rw.Name)
	if err == nil && !*update {
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(rw.Name), 0o755); err != nil {
		return err
	}

	return os.WriteFile(rw.Name, b, 0o644)
}

type InMemory struct {
	Idempotent bool
	Data       []byte
}

func NewInMemory() *InMemory {
	return &InMemory{
		Idempotent: true,
	}
}

func (rw *InMemory) Read() ([]byte, error) {
	return rw.Data, nil
}

func (rw *InMemory) Write(b []byte) error {
	if rw.Idempotent && len(rw.Data) > 0 {
		return nil
	}

	rw.Data = b

	return nil
}
