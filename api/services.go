package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/judgegodwins/chess-rooms/room"
)

func (s *Server) Health(c *gin.Context) {
	c.String(http.StatusOK, "Chess Server is Running!")
}

// Generates a room id and creates the room so it can be shared before anyone joins
func (s *Server) CreateRoom(c *gin.Context) {
	rm, err := s.registry.GetOrCreate(uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("could not create room"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Room created", rm.Snapshot()))
}

type checkRoomRequest struct {
	RoomID string `uri:"id" binding:"required,max=128"`
}

type roomDetails struct {
	room.Snapshot
	Full    bool `json:"full"`
	Members int  `json:"members"`
}

// CheckRoom reports a room's state without creating it.
func (s *Server) CheckRoom(c *gin.Context) {
	var data checkRoomRequest

	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, validationErrorResponse(err))
		return
	}

	rm, ok := s.registry.Get(data.RoomID)

	if !ok {
		c.JSON(http.StatusNotFound, errorResponse("room not found"))
		return
	}

	snapshot := rm.Snapshot()

	c.JSON(http.StatusOK, successResponse("room data", roomDetails{
		Snapshot: snapshot,
		Full:     snapshot.WhiteTaken && snapshot.BlackTaken,
		Members:  s.wsManager.Members(data.RoomID),
	}))
}
