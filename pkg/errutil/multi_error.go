// Package errutil contains utilities for working with errors.
package errutil

import "strings"

// Multi combines errors from independent operations, such as closing several
// resources:
//
//   - If all errors are nil, it returns nil.
//
//   - If there is one non-nil error, it is returned unchanged.
//
//   - Otherwise, it returns an error whose message lists the messages of all
//     non-nil errors in order. errors.Is and errors.As see every one of them.
//
// Errors returned by Multi are flattened when passed to Multi again.
func Multi(errs ...error) error {
	var all multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			all = append(all, err...)
		default:
			all = append(all, err)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

func (me multiError) Unwrap() []error { return me }
