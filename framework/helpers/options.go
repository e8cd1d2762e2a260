// Package helpers contains small generic utilities shared by the framework packages.
package helpers

// ConfigOption changes one setting of a *T. Constructors that take options declare their own
// named option type based on this one, and apply the options with ApplyOptions.
type ConfigOption[T any] interface {
	Configure(*T) error
}

// OptionFunc lets a plain function be used as a ConfigOption.
type OptionFunc[T any] func(*T) error

func (f OptionFunc[T]) Configure(target *T) error { return f(target) }

// ApplyOptions calls each option against target in order, stopping at the first error.
//
// U is a separate type parameter so that callers can pass a slice of their own option type
// without converting it to []ConfigOption[T].
func ApplyOptions[T any, U ConfigOption[T]](target *T, options ...U) error {
	for _, o := range options {
		if err := o.Configure(target); err != nil {
			return err
		}
	}
	return nil
}
