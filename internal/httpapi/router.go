package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/eliman/taskdesk/internal/auth"
	"github.com/eliman/taskdesk/internal/perm"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(api *API) *gin.Engine {
	r := gin.Default()

	r.POST("/api/login", api.login)

	authed := r.Group("/api")
	authed.Use(api.Auth.Middleware())

	// Tasks. Any authenticated role may read (scoped by capability in
	// the handler) and request transitions; the engine decides.
	authed.GET("/tasks", api.listTasks)
	authed.GET("/tasks/:id", api.getTask)
	authed.GET("/tasks/:id/logs", api.getTaskLogs)
	authed.GET("/tasks/:id/progress", api.getTaskProgress)
	authed.GET("/tasks/:id/subtasks", api.listSubtasks)
	authed.GET("/tasks/:id/comments", api.listComments)
	authed.GET("/tasks/:id/assignees", api.listAssignees)
	authed.GET("/tasks/:id/transitions", api.listAvailableTransitions)
	authed.POST("/tasks/:id/status", api.changeTaskStatus)

	canCreate := auth.RequireCapability(func(c perm.Capabilities) bool { return c.CreateTasks })
	authed.POST("/tasks", canCreate, api.createTask)
	authed.PUT("/tasks/:id", canCreate, api.updateTask)
	authed.DELETE("/tasks/:id", canCreate, api.deleteTask)

	// Assignments.
	canAssign := auth.RequireCapability(func(c perm.Capabilities) bool {
		return c.AssignToAnyone || c.AssignToNonAdmin
	})
	authed.POST("/assignments", canAssign, api.addAssignment)
	authed.DELETE("/assignments", canAssign, api.removeAssignment)

	// Subtasks and comments.
	authed.POST("/subtasks", api.addSubtask)
	authed.PUT("/subtasks/:id/toggle", api.toggleSubtask)
	authed.DELETE("/subtasks/:id", api.deleteSubtask)
	authed.POST("/comments", api.addComment)
	authed.PUT("/comments/:id", api.updateComment)
	authed.DELETE("/comments/:id", api.deleteComment)

	// Notifications are always scoped to the caller.
	authed.GET("/notifications", api.listNotifications)
	authed.GET("/notifications/unread-count", api.unreadCount)
	authed.PUT("/notifications/:id/read", api.markNotificationRead)
	authed.PUT("/notifications/read-all", api.markAllNotificationsRead)
	authed.DELETE("/notifications/:id", api.deleteNotification)

	// Users.
	authed.GET("/users", api.listUsers)
	manageUsers := auth.RequireCapability(func(c perm.Capabilities) bool { return c.ManageUsers })
	authed.POST("/users", manageUsers, api.createUser)
	authed.PUT("/users/:id", manageUsers, api.updateUser)
	authed.DELETE("/users/:id", manageUsers, api.deleteUser)

	// Categories and clients.
	authed.GET("/categories", api.listCategories)
	manageCategories := auth.RequireCapability(func(c perm.Capabilities) bool { return c.ManageCategories })
	authed.POST("/categories", manageCategories, api.createCategory)
	authed.PUT("/categories/:id", manageCategories, api.updateCategory)
	authed.DELETE("/categories/:id", manageCategories, api.deleteCategory)

	authed.GET("/clients", api.listClients)
	manageClients := auth.RequireCapability(func(c perm.Capabilities) bool { return c.ManageClients })
	authed.POST("/clients", manageClients, api.createClient)
	authed.PUT("/clients/:id", manageClients, api.updateClient)
	authed.DELETE("/clients/:id", manageClients, api.deleteClient)

	// Templates and recurring task definitions.
	authed.GET("/templates", api.listTemplates)
	authed.POST("/templates", canCreate, api.createTemplate)
	authed.PUT("/templates/:id", canCreate, api.updateTemplate)
	authed.DELETE("/templates/:id", canCreate, api.deleteTemplate)
	authed.POST("/templates/:id/instantiate", canCreate, api.instantiateTemplate)

	authed.GET("/recurring-tasks", api.listRecurringTasks)
	authed.POST("/recurring-tasks", canCreate, api.createRecurringTask)
	authed.PUT("/recurring-tasks/:id", canCreate, api.updateRecurringTask)
	authed.DELETE("/recurring-tasks/:id", canCreate, api.deleteRecurringTask)

	// Status log feed and the due-date reminder scan.
	viewAll := auth.RequireCapability(func(c perm.Capabilities) bool { return c.ViewAllTasks })
	authed.GET("/status-logs", viewAll, api.listStatusLogs)
	authed.POST("/reminders/scan", viewAll, api.runDueScan)

	return r
}
