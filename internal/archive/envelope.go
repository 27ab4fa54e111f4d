package archive

// Status is the outcome discriminator of a response envelope.
type Status string

// Envelope statuses.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Envelope is the uniform tool response: status, row count, data, and an
// optional message. An empty result is a success with count 0, never an
// error.
type Envelope[T any] struct {
	Status  Status `json:"status"`
	Count   int    `json:"count"`
	Data    []T    `json:"data"`
	Message string `json:"message,omitempty"`
}

// Success wraps a result list. Empty lists get an explanatory message so
// callers can tell "nothing matched" from a truncated response.
func Success[T any](data []T) Envelope[T] {
	env := Envelope[T]{
		Status: StatusSuccess,
		Count:  len(data),
		Data:   data,
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	if env.Count == 0 {
		env.Message = "no matching rows"
	}
	return env
}

// Failure wraps an error. The message is the error text as-is; data is an
// empty list so the envelope shape stays uniform.
func Failure[T any](err error) Envelope[T] {
	return Envelope[T]{
		Status:  StatusError,
		Data:    []T{},
		Message: err.Error(),
	}
}
