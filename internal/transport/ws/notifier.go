package ws

import (
	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/logger"
)

// HubNotifier implements service.TaskNotifier using the WebSocket Hub.
// Events go to the task's owner only.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) TaskCreated(task *domain.Task) {
	evt, err := NewEvent(EventTypeTaskCreated, TaskPayload{Task: *task})
	if err != nil {
		logger.Error("ws notifier: marshal error", "error", err)
		return
	}
	n.hub.SendToUser(task.Owner, evt)
}

func (n *HubNotifier) TaskUpdated(task *domain.Task) {
	evt, err := NewEvent(EventTypeTaskUpdated, TaskPayload{Task: *task})
	if err != nil {
		logger.Error("ws notifier: marshal error", "error", err)
		return
	}
	n.hub.SendToUser(task.Owner, evt)
}

func (n *HubNotifier) TaskDeleted(ownerID, taskID int64) {
	evt, err := NewEvent(EventTypeTaskDeleted, TaskDeletedPayload{ID: taskID})
	if err != nil {
		logger.Error("ws notifier: marshal error", "error", err)
		return
	}
	n.hub.SendToUser(ownerID, evt)
}
