// Package options implements generic functional options.
//
// The container package aliases Option for its two config types:
//
//	type EncoderOption = options.Option[*EncoderConfig]
//	type DecoderOption = options.Option[*DecoderConfig]
//
// Encoder options validate their input (an unknown compressor name, widths outside
// 1..4) and report it through New, so NewEncoder fails before any event is packed.
// Decoder options only toggle settings and are built with NoError.
package options

// Option configures a target of type T, typically a pointer to a config struct.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to the Option interface.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input.
//
// The returned error is passed through Apply unchanged, so callers can match the
// errs sentinels it wraps.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error.
//
// Later options override earlier ones that set the same field, which lets a caller
// append overrides to a shared option slice. Options applied before the failing one
// keep their effect, and nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
