package testdump

import (
	"encoding/json"
	"reflect"

	"github.com/google/go-cmp/cmp"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

type YAMLOption struct {
	Hooks []Hook[any]
	Body  []cmp.Option
}

// YAML snapshots v to fileName. Structs keep their JSON field names and
// order.
func YAML(fileName string, v any, opt *YAMLOption) error {
	if opt == nil {
		opt = new(YAMLOption)
	}

	return Snapshot(NewFile(fileName), v, yamlSnapshot(opt), opt.Hooks...)
}

func yamlSnapshot(opt *YAMLOption) S[any] {
	return &snapshot[any]{
		marshal:   MarshalYAML,
		unmarshal: UnmarshalYAML,
		compare: func(snapshot, received any) error {
			return ANSIDiff(snapshot, received, opt.Body...)
		},
	}
}

type snapshot[T any] struct {
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	compare   func(snapshot, received T) error
}

func (s *snapshot[T]) Marshal(t T) ([]byte, error) {
	return s.marshal(t)
}

func (s *snapshot[T]) Unmarshal(b []byte) (T, error) {
	return s.unmarshal(b)
}

func (s *snapshot[T]) Compare(snapshot, received T) error {
	return s.compare(snapshot, received)
}

func MarshalYAML(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case map[string]any:
		return yaml.Marshal(t)
	}

	if !isStruct(v) {
		return yaml.Marshal(v)
	}

	// yaml.Marshal lowercases untagged field names. Going through JSON keeps
	// the JSON names, and the ordered map keeps the field order.
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	om := orderedmap.New[string, any]()
	if err := json.Unmarshal(b, &om); err != nil {
		return nil, err
	}

	return yaml.Marshal(om)
}

// UnmarshalYAML decodes into plain JSON values, so that both sides of a
// comparison have the same shape.
func UnmarshalYAML(b []byte) (any, error) {
	var a any
	if err := yaml.Unmarshal(b, &a); err != nil {
		return nil, err
	}

	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	var v any
	err = json.Unmarshal(b, &v)
	return v, err
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}
