package api

import (
	"github.com/judgegodwins/chess-rooms/http_utils"
)

func errorResponse(msg string) http_utils.Status {
	return http_utils.Failed(msg)
}

func successResponse[T any](msg string, data T) http_utils.Payload[T] {
	return http_utils.WithData(msg, data)
}

func validationErrorResponse(err error) http_utils.Rejection {
	return http_utils.Reject(err)
}
