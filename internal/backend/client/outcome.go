package client

// Outcome is the result of a mutating operation. Presentation code decides
// how to show it.
type Outcome struct {
	Succeeded bool
	Message   string
	// Err is the underlying failure, nil when Succeeded.
	Err error
}

func Success(msg string) Outcome {
	return Outcome{Succeeded: true, Message: msg}
}

func Failure(err error) Outcome {
	return Outcome{Succeeded: false, Message: Message(err), Err: err}
}

func (o Outcome) Failed() bool {
	return !o.Succeeded
}

func (o Outcome) String() string {
	return o.Message
}

// Result splits o into the (message, error) pair used by presentation
// callbacks. The error text is the user facing message and it unwraps to Err.
func (o Outcome) Result() (string, error) {
	if o.Succeeded {
		return o.Message, nil
	}
	msg := o.Message
	if msg == "" {
		msg = GenericErrorMessage
	}
	return "", &outcomeError{msg: msg, err: o.Err}
}

type outcomeError struct {
	msg string
	err error
}

func (e *outcomeError) Error() string {
	return e.msg
}

func (e *outcomeError) Unwrap() error {
	return e.err
}
