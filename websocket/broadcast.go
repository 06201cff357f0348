// Package websocket file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"go-trip-ops/logger"
)

// HandleMessages listens for messages on the broadcast channel and
// distributes them to the connections watching the matching trip.
func HandleMessages() {
	for {
		msg := <-broadcast

		var msgMap map[string]interface{}
		var tripFilter string

		// attempt to parse the message as JSON to extract the trip filter
		if err := json.Unmarshal(msg, &msgMap); err == nil {
			if t, ok := msgMap["tripId"].(string); ok {
				tripFilter = t
			}
		}

		connMu.Lock()
		for c := range connections {
			if tripFilter != "" && c.tripID != tripFilter {
				continue
			}
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping feed message for connection %v", c.conn.RemoteAddr())
			}
		}
		connMu.Unlock()
	}
}

// BroadcastCheckin sends a check-in event to every dashboard watching the trip.
func BroadcastCheckin(tripID string, message map[string]interface{}) {
	message["tripId"] = tripID

	msg, err := json.Marshal(message)
	if err != nil {
		logger.Error.Printf("Error marshalling feed message: %v", err)
		return
	}

	select {
	case broadcast <- msg:
	default:
		logger.Warn.Printf("Feed channel full; dropping check-in event for trip %s", tripID)
	}
}
