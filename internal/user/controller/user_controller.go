// Package controller exposes the user registry over HTTP.
package controller

import (
	"github.com/gin-gonic/gin"

	"minoj/internal/user/repository"
	"minoj/pkg/utils/response"
)

// UserController handles user creation, renaming and listing.
type UserController struct {
	users *repository.UserStore
}

// NewUserController creates a new controller.
func NewUserController(users *repository.UserStore) *UserController {
	return &UserController{users: users}
}

type userRequest struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// PostUsers creates a user when no id is given, otherwise renames the user
// with that id.
func (h *UserController) PostUsers(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid argument "+err.Error())
		return
	}

	if req.ID == nil {
		user, err := h.users.Create(req.Name)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, user)
		return
	}

	user, err := h.users.Rename(*req.ID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// GetUsers lists all users sorted by id.
func (h *UserController) GetUsers(c *gin.Context) {
	response.OK(c, h.users.List())
}
