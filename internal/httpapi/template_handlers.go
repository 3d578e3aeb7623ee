package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/auth"
	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/service"
)

// === Templates ===

func (api *API) listTemplates(c *gin.Context) {
	templates, err := api.Store.GetTemplates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (api *API) createTemplate(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var tpl model.TaskTemplate
	if err := c.BindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl.ID = uuid.New().String()
	tpl.CreatedByID = identity.ID
	tpl.CreatedAt = time.Now().UTC()

	if err := api.Store.CreateTemplate(c.Request.Context(), tpl); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (api *API) updateTemplate(c *gin.Context) {
	existing, err := api.Store.GetTemplateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := c.BindJSON(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.ID = c.Param("id")

	if err := api.Store.UpdateTemplate(c.Request.Context(), *existing); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (api *API) deleteTemplate(c *gin.Context) {
	if err := api.Store.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type instantiateRequest struct {
	ClientID  string                  `json:"client_id" binding:"required"`
	DueDate   *time.Time              `json:"due_date,omitempty"`
	Assignees []service.AssigneeInput `json:"assignees"`
}

func (api *API) instantiateTemplate(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var req instantiateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := api.Service.CreateFromTemplate(
		c.Request.Context(), identity,
		c.Param("id"), req.ClientID, req.DueDate, req.Assignees,
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// === Recurring task definitions ===

func (api *API) listRecurringTasks(c *gin.Context) {
	recurring, err := api.Store.GetRecurringTasks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recurring)
}

func (api *API) createRecurringTask(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var r model.RecurringTask
	if err := c.BindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r.ID = uuid.New().String()
	r.CreatedByID = identity.ID
	r.CreatedAt = time.Now().UTC()

	if err := api.Store.CreateRecurringTask(c.Request.Context(), r); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (api *API) updateRecurringTask(c *gin.Context) {
	var r model.RecurringTask
	if err := c.BindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r.ID = c.Param("id")

	if err := api.Store.UpdateRecurringTask(c.Request.Context(), r); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (api *API) deleteRecurringTask(c *gin.Context) {
	if err := api.Store.DeleteRecurringTask(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
