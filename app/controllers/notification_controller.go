package controllers

import (
	"log"
	"time"

	"github.com/gilanghuda/ecosync-backend/app/queries"
	"github.com/gilanghuda/ecosync-backend/pkg/database"
	"github.com/gilanghuda/ecosync-backend/pkg/utils"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type requestUpdate struct {
	RequestID uuid.UUID
	Status    string
	At        time.Time
}

var updateChan = make(chan requestUpdate, 100)

// notifyRequestUpdate queues a status-change event for delivery. Best
// effort: a full queue drops the event rather than blocking the transition.
func notifyRequestUpdate(requestID uuid.UUID, status string) {
	select {
	case updateChan <- requestUpdate{RequestID: requestID, Status: status, At: time.Now()}:
	default:
		log.Printf("event=notify_drop request=%s status=%s", requestID, status)
	}
}

// StartUpdateDispatcher delivers queued status changes to the citizen and,
// when assigned, the vendor of the request over their live WebSocket
// connections.
func StartUpdateDispatcher() {
	go func() {
		for upd := range updateChan {
			payload := map[string]interface{}{
				"event":      "request_update",
				"request_id": upd.RequestID,
				"status":     upd.Status,
				"updated_at": upd.At,
			}

			q := queries.PickupQueries{DB: database.DB}
			request, err := q.GetRequestByID(upd.RequestID)
			if err != nil {
				log.Printf("dispatcher: failed to get request %v: %v", upd.RequestID, err)
				continue
			}

			_ = utils.DefaultNotifier.Send(request.CitizenID, payload)
			if request.AssignedVendorID != nil {
				_ = utils.DefaultNotifier.Send(*request.AssignedVendorID, payload)
			}
		}
	}()
}

// WsHandler keeps a user's WebSocket connection registered for request
// update notifications. Authentication comes from a token query parameter.
func WsHandler(c *websocket.Conn) {
	token := c.Query("token")
	var userID uuid.UUID
	if token != "" {
		head := "Bearer " + token
		userID, _ = utils.ExtractUserIDFromHeader(head)
	}
	if userID == uuid.Nil {
		c.Close()
		return
	}

	utils.DefaultNotifier.Register(userID, c)
	defer utils.DefaultNotifier.Unregister(userID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
