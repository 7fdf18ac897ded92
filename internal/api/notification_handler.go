package api

import (
	"fmt"
	"net/http"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler serves the in-app inbox.
type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// DeleteNotificationsRequest selects messages to remove. No IDs clears the inbox.
type DeleteNotificationsRequest struct {
	IDs []string `json:"ids"`
}

func nonNilNotifications(ns []domain.Notification) []domain.Notification {
	if ns == nil {
		return []domain.Notification{}
	}
	return ns
}

// ListNotifications godoc
// @Summary Inbox
// @Description Returns all messages newest first with their read state before this view, then marks them read.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Notification
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	ns, err := h.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilNotifications(ns))
}

// UnreadCount godoc
// @Summary Unread badge count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	n, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// GetNotification godoc
// @Summary Open a message
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} gin.H "Not found"
// @Router /notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	n, err := h.notificationService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// DeleteNotification godoc
// @Summary Delete a message
// @Tags Notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.Delete(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteNotifications godoc
// @Summary Bulk delete
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteNotificationsRequest false "IDs to delete; empty deletes all"
// @Success 200 {object} gin.H
// @Router /notifications [delete]
func (h *NotificationHandler) DeleteNotifications(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req DeleteNotificationsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	ids := make([]primitive.ObjectID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid notification ID %q", raw))
			return
		}
		ids = append(ids, id)
	}

	deleted, err := h.notificationService.DeleteMany(c.Request.Context(), userID, ids)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// CheckNotifications godoc
// @Summary Run nutrition and training checks now
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Notification "Messages created by this run"
// @Router /notifications/check [post]
func (h *NotificationHandler) CheckNotifications(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	created, err := h.notificationService.Check(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNilNotifications(created))
}
