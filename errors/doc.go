/*
Package errors implements the error handling used across the VaultDAO
governance core.

Errors are categorized by root error instances. Each root is registered
with a unique code and a short description. Runtime errors are created
by wrapping a root error with additional context. Use the root error Is
method to test which category an error belongs to:

	if errors.ErrNotFound.Is(err) {
		...
	}

Validation failures must always identify the offending field. Use Field
to attach a field name to an error and FieldErrors to extract all
errors reported for a given field.
*/
package errors
