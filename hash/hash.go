package hash

import (
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"

	"github.com/outofforest/photon"
)

// Func computes hash of a state.
type Func[S comparable] func(state S) uint64

// New returns the hash function for states of type S.
// States are hashed by their raw bytes, so two equal states must have equal bytes. It rules out types
// containing strings, interfaces, floats or padding. Plain strings are hashed by content.
func New[S comparable]() (Func[S], error) {
	t := reflect.TypeFor[S]()
	if t.Kind() == reflect.String {
		return func(state S) uint64 {
			return xxhash.Sum64String(*(*string)(unsafe.Pointer(&state)))
		}, nil
	}
	if err := verifyRaw(t); err != nil {
		return nil, errors.Wrapf(err, "state type %s can't be hashed by its bytes", t)
	}

	return func(state S) uint64 {
		return xxhash.Sum64(photon.NewFromValue(&state).B)
	}, nil
}

func verifyRaw(t reflect.Type) error {
	switch t.Kind() {
	case reflect.String, reflect.Interface:
		return errors.Errorf("%s is compared by content, not by bytes", t)
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return errors.Errorf("%s has equal values with different bytes", t)
	case reflect.Array:
		return verifyRaw(t.Elem())
	case reflect.Struct:
		var offset uintptr
		for i := range t.NumField() {
			f := t.Field(i)
			if f.Offset != offset {
				return errors.Errorf("%s has padding before field %s", t, f.Name)
			}
			if err := verifyRaw(f.Type); err != nil {
				return err
			}
			offset += f.Type.Size()
		}
		if offset != t.Size() {
			return errors.Errorf("%s has trailing padding", t)
		}
	}
	return nil
}
