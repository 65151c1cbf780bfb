package http_utils

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type roomRequest struct {
	RoomID string `validate:"required,max=8"`
	Seats  int    `validate:"min=1"`
}

func TestReject(t *testing.T) {
	t.Run("one entry per failed field", func(t *testing.T) {
		err := validator.New().Struct(roomRequest{RoomID: "far-too-long"})
		require.Error(t, err)

		r := Reject(err)

		require.False(t, r.Success)
		require.Equal(t, rejectedMessage, r.Message)
		require.Equal(t, []string{"RoomID failed on max", "Seats failed on min"}, r.Errors)
	})

	t.Run("other errors are listed as is", func(t *testing.T) {
		r := Reject(errors.New("bad uri"))

		require.False(t, r.Success)
		require.Equal(t, []string{"bad uri"}, r.Errors)
	})
}

func TestEnvelopes(t *testing.T) {
	type room struct {
		ID string `json:"id"`
	}

	b, err := json.Marshal(WithData("room data", room{ID: "abc123"}))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"message":"room data","data":{"id":"abc123"}}`, string(b))

	b, err = json.Marshal(Failed("room not found"))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"message":"room not found"}`, string(b))
}
