package validation

// Error marks input that failed validation, so HTTP handlers can map it
// to a 400 instead of a 500.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func NewError(msg string) error {
	return &Error{msg: msg}
}
