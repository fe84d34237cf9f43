package handler

import (
	"net/http"
	"time"

	gws "github.com/gorilla/websocket"

	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/service/websocket"
)

var Upgrader = gws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler handles GET /api/stream/live: registers the connection
// with the viewer hub and keeps reading until the peer goes away.
func ViewWebsocketHandler(hub *websocket.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		hub.Register(connection)
		defer hub.Unregister(connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				return
			}
		}
	}
}

// SignalingProxyHandler handles GET /api/streams/camera/webrtc: forwards
// WebRTC signaling messages between the browser and the upstream go2rtc
// server on the camera host. Either side closing tears down both connections.
func SignalingProxyHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		defer client.Close()

		upstreamURL := cfg.SignalingUpstreamURL + "/api/streams/camera/webrtc"
		upstream, _, err := gws.DefaultDialer.Dial(upstreamURL, nil)
		if err != nil {
			logger.Error("Failed to connect to signaling upstream %s: %v", upstreamURL, err)
			client.WriteMessage(gws.CloseMessage,
				gws.FormatCloseMessage(gws.CloseInternalServerErr, "upstream unavailable"))
			return
		}
		defer upstream.Close()

		logger.Info("Signaling proxy connected: %s <-> %s", r.RemoteAddr, upstreamURL)

		errc := make(chan error, 2)
		go forwardMessages(client, upstream, errc)
		go forwardMessages(upstream, client, errc)

		// First error from either direction ends the session; the deferred
		// closes unblock the other goroutine.
		<-errc
		logger.Info("Signaling proxy closed: %s", r.RemoteAddr)
	}
}

func forwardMessages(src, dst *gws.Conn, errc chan<- error) {
	for {
		messageType, message, err := src.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		if err := dst.WriteMessage(messageType, message); err != nil {
			errc <- err
			return
		}
	}
}
