package inventory

// ValidationError is a form rule failure. Message is shown next to the form verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
