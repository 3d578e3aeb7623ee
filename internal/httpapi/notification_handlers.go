package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eliman/taskdesk/internal/auth"
)

// Notification endpoints always operate on the caller's own
// notifications; there is no cross-user access.

func (api *API) listNotifications(c *gin.Context) {
	identity, _ := auth.Identity(c)

	notifications, err := api.Store.GetNotificationsForUser(c.Request.Context(), identity.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (api *API) unreadCount(c *gin.Context) {
	identity, _ := auth.Identity(c)

	count, err := api.Store.CountUnreadNotifications(c.Request.Context(), identity.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (api *API) markNotificationRead(c *gin.Context) {
	identity, _ := auth.Identity(c)

	if err := api.Store.MarkNotificationRead(c.Request.Context(), c.Param("id"), identity.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "read"})
}

func (api *API) markAllNotificationsRead(c *gin.Context) {
	identity, _ := auth.Identity(c)

	if err := api.Store.MarkAllNotificationsRead(c.Request.Context(), identity.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all read"})
}

func (api *API) deleteNotification(c *gin.Context) {
	identity, _ := auth.Identity(c)

	if err := api.Store.DeleteNotification(c.Request.Context(), c.Param("id"), identity.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
