package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/auth"
	"github.com/eliman/taskdesk/internal/model"
)

type userRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
}

func (api *API) listUsers(c *gin.Context) {
	users, err := api.Store.GetUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (api *API) createUser(c *gin.Context) {
	var req userRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := api.Store.CreateUser(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	created, err := api.Store.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (api *API) updateUser(c *gin.Context) {
	existing, err := api.Store.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	req := userRequest{
		Username: existing.Username,
		Name:     existing.Name,
		Role:     existing.Role,
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An empty password leaves the stored hash untouched.
	var hash string
	if req.Password != "" {
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	user := model.User{
		ID:           existing.ID,
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
	}
	if err := api.Store.UpdateUser(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	updated, err := api.Store.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (api *API) deleteUser(c *gin.Context) {
	if err := api.Store.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
