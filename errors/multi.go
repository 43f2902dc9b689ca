package errors

import "strings"

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// represented errors are clubbed together into a single multi error
// instead of being nested.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			res = append(res, u.Unpack()...)
		} else {
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

type multiError []error

var _ unpacker = multiError{}

func (errs multiError) Unpack() []error {
	return errs
}

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return "<nil>"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// unpacker is an interface implemented by an error that represents a
// collection of errors.
type unpacker interface {
	// Unpack returns all errors that this error instance is clubbing
	// together.
	Unpack() []error
}
