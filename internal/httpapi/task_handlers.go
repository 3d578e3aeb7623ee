package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eliman/taskdesk/internal/auth"
	"github.com/eliman/taskdesk/internal/engine"
	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/perm"
	"github.com/eliman/taskdesk/internal/service"
	"github.com/eliman/taskdesk/internal/store"
)

// canAccessTask reports whether the caller may see a task: privileged
// roles see everything, others only tasks they created or are assigned
// to.
func (api *API) canAccessTask(c *gin.Context, identity model.Identity, task *model.Task) bool {
	if perm.For(identity.Role).ViewAllTasks {
		return true
	}
	if task.CreatedByID == identity.ID {
		return true
	}
	ids, err := api.Store.GetAssigneeIDs(c.Request.Context(), task.ID)
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == identity.ID {
			return true
		}
	}
	return false
}

// taskForRead loads the task named by the :id param and enforces the
// visibility policy. On failure it writes the response and returns
// false; every task read and sub-resource read goes through it.
func (api *API) taskForRead(c *gin.Context) (*model.Task, bool) {
	identity, _ := auth.Identity(c)

	task, err := api.Store.GetTaskByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !api.canAccessTask(c, identity, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to this task"})
		return nil, false
	}
	return task, true
}

func (api *API) listTasks(c *gin.Context) {
	identity, _ := auth.Identity(c)

	filter := store.TaskFilter{SortBy: "created_at", SortDesc: true}
	if v := c.Query("status"); v != "" {
		s := model.Status(v)
		filter.Status = &s
	}
	if v := c.Query("client_id"); v != "" {
		filter.ClientID = &v
	}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("q"); v != "" {
		filter.Query = &v
	}

	// Restricted roles only see their own work.
	if !perm.For(identity.Role).ViewAllTasks {
		filter.AssignedToID = &identity.ID
	}

	tasks, err := api.Store.GetTasks(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (api *API) getTask(c *gin.Context) {
	task, ok := api.taskForRead(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

func (api *API) createTask(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var in service.CreateTaskInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := api.Service.CreateTask(c.Request.Context(), identity, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (api *API) updateTask(c *gin.Context) {
	task, err := api.Store.GetTaskByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := c.BindJSON(task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task.ID = c.Param("id")

	if err := api.Store.UpdateTaskFields(c.Request.Context(), *task); err != nil {
		writeError(c, err)
		return
	}

	updated, err := api.Store.GetTaskByID(c.Request.Context(), task.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (api *API) deleteTask(c *gin.Context) {
	if err := api.Service.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type changeStatusRequest struct {
	Status    model.Status `json:"status" binding:"required"`
	Note      string       `json:"note"`
	StartTime *time.Time   `json:"start_time,omitempty"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
}

// changeTaskStatus is the transition endpoint. Any authenticated role
// may call it; the engine decides whether the transition is legal.
func (api *API) changeTaskStatus(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var req changeStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := api.Engine.ChangeStatus(c.Request.Context(), engine.Request{
		TaskID:    c.Param("id"),
		Actor:     identity,
		NewStatus: req.Status,
		Note:      req.Note,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// listAvailableTransitions tells a client which statuses the caller may
// move the task to from its current state.
func (api *API) listAvailableTransitions(c *gin.Context) {
	identity, _ := auth.Identity(c)

	task, ok := api.taskForRead(c)
	if !ok {
		return
	}

	transitions := perm.AvailableTransitions(identity.Role, task.Status)
	if transitions == nil {
		transitions = []model.Status{}
	}
	c.JSON(http.StatusOK, gin.H{"status": task.Status, "transitions": transitions})
}

func (api *API) getTaskLogs(c *gin.Context) {
	task, ok := api.taskForRead(c)
	if !ok {
		return
	}

	logs, err := api.Store.GetLogsForTask(c.Request.Context(), task.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (api *API) getTaskProgress(c *gin.Context) {
	task, ok := api.taskForRead(c)
	if !ok {
		return
	}

	progress, err := api.Service.Progress(c.Request.Context(), task.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (api *API) listStatusLogs(c *gin.Context) {
	logs, err := api.Store.GetStatusLogs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (api *API) runDueScan(c *gin.Context) {
	triggered, err := api.Service.DueScan(c.Request.Context(), api.DueSoonWindow)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"triggered": triggered})
}
