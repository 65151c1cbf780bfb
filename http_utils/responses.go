package http_utils

// Status heads every response body the api writes.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(msg string) Status {
	return Status{Success: true, Message: msg}
}

func Failed(msg string) Status {
	return Status{Message: msg}
}

// Payload is a successful response carrying data of a known type.
type Payload[T any] struct {
	Status
	Data T `json:"data"`
}

func WithData[T any](msg string, data T) Payload[T] {
	return Payload[T]{Status: OK(msg), Data: data}
}

// Rejection is a failed response listing what was wrong with the request.
type Rejection struct {
	Status
	Errors []string `json:"errors"`
}
