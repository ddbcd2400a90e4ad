package generators

import "errors"

// ErrRetryable marks transient provider failures, joined onto the cause.
var ErrRetryable = errors.New("retryable")

type OpenAIError struct {
	Err   error
	Model string
}

var _ error = OpenAIError{}

func (o OpenAIError) Error() string {
	return o.Err.Error()
}

func (o OpenAIError) Unwrap() error {
	return o.Err
}
