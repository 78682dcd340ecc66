package tween

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidTarget is returned when a tween target does not have identity
// semantics. Targets are keyed and mutated by reference, so they must be
// non-nil pointers; passing a struct by value fails with this error.
var ErrInvalidTarget = errors.New("tween: target must be a non-nil pointer")

// validateTarget enforces identity semantics: tween targets are keyed and
// mutated by reference, so only non-nil pointers are accepted.
func validateTarget(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	return nil
}

// BindingError reports a named property that could not be resolved on a
// tween target: the field is missing, not numeric, or not writable. It is
// returned eagerly at tween construction, never during interpolation.
type BindingError struct {
	Name   string // the property name that failed to resolve
	Reason string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("tween: cannot bind %q: %s", e.Name, e.Reason)
}

// Binding is a resolved, type-checked accessor for one numeric attribute on
// a target object. Get and Set coerce between the attribute's native numeric
// kind and float32.
type Binding interface {
	Get() float32
	Set(float32)
}

// Resolver locates numeric attributes by name on a target object. A Tweener
// uses one Resolver for every tween it creates; see Tweener.SetResolver.
type Resolver interface {
	// Resolve returns an accessor for the attribute called name on target.
	// If writable is true the attribute must support both read and write;
	// otherwise read access suffices. Failures are reported as *BindingError.
	Resolve(target any, name string, writable bool) (Binding, error)
}

// FieldResolver resolves exported struct fields by name using reflection.
// The target must be a pointer to a struct (possibly through further
// pointers) for writable resolution; a struct value works read-only.
// The zero value is ready to use and is the default Resolver of NewTweener.
type FieldResolver struct{}

// Resolve implements Resolver.
func (FieldResolver) Resolve(target any, name string, writable bool) (Binding, error) {
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &BindingError{Name: name, Reason: "target is a nil pointer"}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, &BindingError{Name: name, Reason: fmt.Sprintf("target kind %s has no fields", rv.Kind())}
	}
	f := rv.FieldByName(name)
	if !f.IsValid() {
		return nil, &BindingError{Name: name, Reason: "no such field"}
	}
	if !isNumericKind(f.Kind()) {
		return nil, &BindingError{Name: name, Reason: fmt.Sprintf("field kind %s is not numeric", f.Kind())}
	}
	if writable && !f.CanSet() {
		return nil, &BindingError{Name: name, Reason: "field is not settable (unexported, or target passed by value)"}
	}
	return fieldBinding{f}, nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// fieldBinding adapts a reflect.Value of numeric kind to the Binding
// interface. The value is captured once at resolve time; Get and Set do not
// allocate, which keeps the steady-state Update path allocation-free.
type fieldBinding struct {
	v reflect.Value
}

func (b fieldBinding) Get() float32 {
	switch b.v.Kind() {
	case reflect.Float32, reflect.Float64:
		return float32(b.v.Float())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float32(b.v.Uint())
	default:
		return float32(b.v.Int())
	}
}

// Set writes val back with coercion to the field's native kind: integer
// kinds truncate toward zero, and negative values clamp to 0 for unsigned
// kinds rather than wrapping.
func (b fieldBinding) Set(val float32) {
	switch b.v.Kind() {
	case reflect.Float32, reflect.Float64:
		b.v.SetFloat(float64(val))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if val < 0 {
			val = 0
		}
		b.v.SetUint(uint64(val))
	default:
		b.v.SetInt(int64(val))
	}
}

// Accessor pairs a getter and an optional setter for one named value. Used
// with MapResolver for targets that cannot, or should not, be reflected over.
type Accessor struct {
	Get func() float32
	Set func(float32)
}

// MapResolver resolves property names against a caller-supplied accessor
// table, ignoring the target entirely. It is the reflection-free binding
// strategy: hosts that animate a single object, or that dispatch on target
// themselves, install one via Tweener.SetResolver.
type MapResolver map[string]Accessor

// Resolve implements Resolver.
func (m MapResolver) Resolve(_ any, name string, writable bool) (Binding, error) {
	a, ok := m[name]
	if !ok {
		return nil, &BindingError{Name: name, Reason: "no accessor registered"}
	}
	if a.Get == nil {
		return nil, &BindingError{Name: name, Reason: "accessor has no getter"}
	}
	if writable && a.Set == nil {
		return nil, &BindingError{Name: name, Reason: "accessor has no setter"}
	}
	return accessorBinding{a}, nil
}

type accessorBinding struct {
	a Accessor
}

func (b accessorBinding) Get() float32 { return b.a.Get() }

func (b accessorBinding) Set(val float32) {
	if b.a.Set != nil {
		b.a.Set(val)
	}
}
