package handler

import (
	"restaurant_manager/notify"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

var hub *notify.Hub

// UseHub installs the event hub the handlers broadcast through.
func UseHub(h *notify.Hub) {
	hub = h
}

// broadcast publishes an event to one audience. Events are dropped silently
// when no hub is installed.
func broadcast(channel string, event map[string]any) {
	if hub == nil {
		return
	}
	hub.Publish(channel, event)
}

// WebSocketUpgrade rejects plain HTTP requests and unknown channel names
// before the connection is upgraded.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if hub == nil || !hub.ValidChannel(c.Params("channel")) {
			return fiber.ErrNotFound
		}
		return c.Next()
	}
}

// WebSocketChannel keeps the connection registered on its audience until the
// client goes away. Incoming frames are read only to detect disconnect.
func WebSocketChannel() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		channel := conn.Params("channel")
		hub.Connect(channel, conn)
		defer hub.Disconnect(channel, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
