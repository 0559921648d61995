package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type roomsHandler struct {
	catalog *app.Catalog
	orch    *orch.Orchestrator
}

type roomView struct {
	Name   domain.RoomName `json:"name"`
	Owner  string          `json:"owner"`
	Online int             `json:"online"`
}

type createRoomRequest struct {
	Username string `json:"username" binding:"required,max=36"`
	RoomName string `json:"roomName" binding:"required,max=36"`
}

// GET /api/rooms
func (h *roomsHandler) list(c *gin.Context) {
	rooms, err := h.catalog.List(c.Request.Context())
	if err != nil {
		internalError(c, err, "list rooms")
		return
	}
	online := lo.SliceToMap(h.orch.Fanout.List(), func(r core.RoomInfo) (domain.RoomName, int) {
		return r.Name, r.MemberCount
	})
	views := lo.Map(rooms, func(r domain.Room, _ int) roomView {
		return roomView{Name: r.Name, Owner: r.Owner, Online: online[r.Name]}
	})
	c.JSON(http.StatusOK, gin.H{"rooms": views})
}

// POST /api/rooms
func (h *roomsHandler) create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and roomName are required"})
		return
	}
	room, err := h.catalog.Create(c.Request.Context(), domain.RoomName(req.RoomName), req.Username)
	switch {
	case isValidationErr(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		internalError(c, err, "create room")
	default:
		c.JSON(http.StatusCreated, room)
	}
}

// GET /api/rooms/:name
func (h *roomsHandler) get(c *gin.Context) {
	ctx := c.Request.Context()
	name := domain.RoomName(c.Param("name"))
	room, ok, err := h.catalog.Find(ctx, name)
	if err != nil {
		internalError(c, err, "find room")
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	messages, err := h.catalog.History(ctx, name)
	if err != nil {
		internalError(c, err, "room history")
		return
	}
	users := h.orch.Directory.ListByRoom(name)
	if users == nil {
		users = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"name":     room.Name,
		"owner":    room.Owner,
		"users":    users,
		"messages": messages,
	})
}

// DELETE /api/rooms/:name
func (h *roomsHandler) delete(c *gin.Context) {
	if _, err := h.catalog.Delete(c.Request.Context(), domain.RoomName(c.Param("name"))); err != nil {
		internalError(c, err, "delete room")
		return
	}
	c.Status(http.StatusNoContent)
}

func isValidationErr(err error) bool {
	return errors.Is(err, domain.ErrUsernameEmpty) ||
		errors.Is(err, domain.ErrUsernameTooLong) ||
		errors.Is(err, domain.ErrRoomEmpty) ||
		errors.Is(err, domain.ErrRoomTooLong)
}

func internalError(c *gin.Context, err error, op string) {
	log.Error().Err(err).Str("module", "adapters.http").Str("op", op).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
