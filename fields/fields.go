// Package fields provides declaration helpers that build field.Spec values
// with the standard adapter chains wired in. Task implementations use these
// when registering their static field descriptor lists.
package fields

import (
	"github.com/ariel-frischer/taskrig/adapters"
	"github.com/ariel-frischer/taskrig/field"
)

// Option mutates a spec under construction.
type Option func(*field.Spec)

// Repeat declares a repetition range; pass nil for an unbounded side.
func Repeat(min, max *int) Option {
	return func(s *field.Spec) { s.Repeat = field.RepeatRange(min, max) }
}

// RepeatCount declares an exact element count.
func RepeatCount(count int) Option {
	return func(s *field.Spec) { s.Repeat = field.RepeatCount(count) }
}

// Default declares the value bound when the field is absent.
func Default(value any) Option {
	return func(s *field.Spec) { s.Default = field.DefaultValue(value) }
}

// Choices restricts the raw token to a finite set.
func Choices(choices ...string) Option {
	return func(s *field.Spec) { s.Choices = choices }
}

// Description sets the help text, overriding any doc-block :param text.
func Description(text string) Option {
	return func(s *field.Spec) { s.Description = text }
}

// Adapters appends extra adapters after the type's standard chain.
func Adapters(extra ...field.Adapter) Option {
	return func(s *field.Spec) { s.Adapters = append(s.Adapters, extra...) }
}

func build(spec field.Spec, options []Option) field.Spec {
	for _, option := range options {
		option(&spec)
	}
	return spec
}

// Text declares a plain string field.
func Text(name string, options ...Option) field.Spec {
	return build(field.Spec{Name: name, Type: field.String}, options)
}

// Integer declares an integer field converted with adapters.ToInt.
func Integer(name string, options ...Option) field.Spec {
	return build(field.Spec{
		Name:     name,
		Type:     field.Int,
		Adapters: []field.Adapter{adapters.ToInt},
	}, options)
}

// Number declares a float field converted with adapters.ToFloat.
func Number(name string, options ...Option) field.Spec {
	return build(field.Spec{
		Name:     name,
		Type:     field.Float,
		Adapters: []field.Adapter{adapters.ToFloat},
	}, options)
}

// Boolean declares a boolean field. As a flagged option it consumes no value;
// as a positional it accepts yes/no/true/false tokens.
func Boolean(name string, options ...Option) field.Spec {
	return build(field.Spec{
		Name:     name,
		Type:     field.Bool,
		Adapters: []field.Adapter{adapters.ToBool},
	}, options)
}

// CommaList declares a field whose single token expands to a string list.
func CommaList(name string, options ...Option) field.Spec {
	return build(field.Spec{
		Name:     name,
		Type:     field.StringList,
		Adapters: []field.Adapter{adapters.ToCommaList},
	}, options)
}

// Folder declares a path field validated as an existing directory.
func Folder(name string, absolute bool, options ...Option) field.Spec {
	chain := []field.Adapter{adapters.PathIsFolder}
	if absolute {
		chain = append(chain, adapters.PathToAbsolute)
	}
	return build(field.Spec{Name: name, Type: field.String, Adapters: chain}, options)
}

// Path declares a filesystem path field with optional existence checking and
// absolute-path conversion.
func Path(name string, absolute, mustExist bool, options ...Option) field.Spec {
	var chain []field.Adapter
	if absolute {
		chain = append(chain, adapters.PathToAbsolute)
	}
	if mustExist {
		chain = append(chain, adapters.PathExists)
	}
	return build(field.Spec{Name: name, Type: field.String, Adapters: chain}, options)
}
