package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eliman/taskdesk/internal/auth"
)

// === Assignments ===

type assignmentRequest struct {
	TaskID  string `json:"task_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	IsOwner bool   `json:"is_owner"`
}

func (api *API) addAssignment(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var req assignmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Service.Assign(c.Request.Context(), identity, req.TaskID, req.UserID, req.IsOwner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "assigned"})
}

func (api *API) removeAssignment(c *gin.Context) {
	var req assignmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Service.Unassign(c.Request.Context(), req.TaskID, req.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unassigned"})
}

func (api *API) listAssignees(c *gin.Context) {
	task, ok := api.taskForRead(c)
	if !ok {
		return
	}

	users, err := api.Service.Assignees(c.Request.Context(), task.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// === Subtasks ===

type subtaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

func (api *API) addSubtask(c *gin.Context) {
	var req subtaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := api.Service.AddSubtask(c.Request.Context(), req.TaskID, req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (api *API) listSubtasks(c *gin.Context) {
	task, ok := api.taskForRead(c)
	if !ok {
		return
	}

	subs, err := api.Service.Subtasks(c.Request.Context(), task.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (api *API) toggleSubtask(c *gin.Context) {
	identity, _ := auth.Identity(c)

	sub, err := api.Service.ToggleSubtask(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (api *API) deleteSubtask(c *gin.Context) {
	if err := api.Service.DeleteSubtask(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// === Comments ===

type commentRequest struct {
	TaskID  string `json:"task_id"`
	Content string `json:"content" binding:"required"`
}

func (api *API) addComment(c *gin.Context) {
	identity, _ := auth.Identity(c)

	var req commentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id is required"})
		return
	}

	comment, err := api.Service.AddComment(c.Request.Context(), identity, req.TaskID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (api *API) listComments(c *gin.Context) {
	task, ok := api.taskForRead(c)
	if !ok {
		return
	}

	comments, err := api.Service.Comments(c.Request.Context(), task.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (api *API) updateComment(c *gin.Context) {
	var req commentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := api.Service.UpdateComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (api *API) deleteComment(c *gin.Context) {
	if err := api.Service.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
