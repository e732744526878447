package calculator

// InvalidInputError flags inputs the calculators refuse to compute on, like
// empty segment lists or non-finite values. Nothing here is retryable.
type InvalidInputError struct {
	Err error
}

func (e InvalidInputError) Error() string {
	return e.Err.Error()
}

func (e InvalidInputError) Unwrap() error {
	return e.Err
}
