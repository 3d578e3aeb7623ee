package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (api *API) listCategories(c *gin.Context) {
	categories, err := api.Store.GetCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (api *API) createCategory(c *gin.Context) {
	var req nameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := model.Category{ID: uuid.New().String(), Name: req.Name}
	if err := api.Store.CreateCategory(c.Request.Context(), category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (api *API) updateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := model.Category{ID: c.Param("id"), Name: req.Name}
	if err := api.Store.UpdateCategory(c.Request.Context(), category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (api *API) deleteCategory(c *gin.Context) {
	if err := api.Store.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (api *API) listClients(c *gin.Context) {
	clients, err := api.Store.GetClients(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (api *API) createClient(c *gin.Context) {
	var req nameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := model.Client{ID: uuid.New().String(), Name: req.Name}
	if err := api.Store.CreateClient(c.Request.Context(), client); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (api *API) updateClient(c *gin.Context) {
	var req nameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := model.Client{ID: c.Param("id"), Name: req.Name}
	if err := api.Store.UpdateClient(c.Request.Context(), client); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (api *API) deleteClient(c *gin.Context) {
	if err := api.Store.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
