package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/dto"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/service/storage"
	"github.com/skhartaye/SMOKI/internal/service/stream"
	"github.com/skhartaye/SMOKI/internal/service/websocket"
)

// IngestFrameHandler handles POST /api/stream/frame: one JPEG frame per
// request in the multipart field "frame". The frame goes to the FrameStore,
// the viewer hub, and the capture sampler; none of those block on I/O.
func IngestFrameHandler(store *stream.FrameStore, hub *websocket.HubService, captures *storage.BufferService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("frame")
		if err != nil {
			http.Error(w, "Missing frame field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Error reading frame upload: %v", err)
			http.Error(w, "Error reading frame", http.StatusBadRequest)
			return
		}
		if len(data) == 0 {
			http.Error(w, "Empty frame", http.StatusBadRequest)
			return
		}

		store.Add(data)
		hub.BroadcastFrame(data)
		captures.Sample(data)

		writeJSON(w, http.StatusOK, dto.IngestResponse{
			Success:        true,
			FPS:            store.FPS(),
			BufferedFrames: store.Len(),
		})
	}
}

// LatestFrameHandler handles GET /api/stream/latest.jpg.
func LatestFrameHandler(store *stream.FrameStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame, _ := store.Latest()
		if frame == nil {
			http.Error(w, "No frame available", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Write(frame)
	}
}

// MJPEGStreamHandler handles GET /api/stream/stream.mjpeg: a multipart stream
// that polls the latest frame on a fixed tick and emits a part only when the
// frame changed. The loop ends when the request context is cancelled, which
// is how peer disconnects surface.
func MJPEGStreamHandler(store *stream.FrameStore, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		logger.Info("MJPEG viewer connected: %s", r.RemoteAddr)
		defer logger.Info("MJPEG viewer disconnected: %s", r.RemoteAddr)

		ticker := time.NewTicker(time.Duration(cfg.MJPEGFrameInterval) * time.Millisecond)
		defer ticker.Stop()

		var lastSeq uint64
		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				frame, seq := store.Latest()
				if frame == nil || seq == lastSeq {
					continue
				}
				lastSeq = seq

				if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
					return
				}
				if _, err := w.Write(frame); err != nil {
					return
				}
				if _, err := io.WriteString(w, "\r\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

// PlaylistHandler handles GET /api/stream/playlist.m3u8.
func PlaylistHandler(packager *stream.Packager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := stream.RenderPlaylist(packager.Segments())
		if err != nil {
			logger.Error("Error rendering playlist: %v", err)
			http.Error(w, "Error rendering playlist", http.StatusInternalServerError)
			return
		}
		if doc == "" {
			http.Error(w, "Stream not ready", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		io.WriteString(w, doc)
	}
}

// SegmentHandler handles GET /api/stream/segment_{index}.ts. An unknown or
// already evicted index is 404, not an error.
func SegmentHandler(packager *stream.Packager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		path, ok := packager.SegmentPath(index)
		if !ok {
			http.NotFound(w, r)
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			// Evicted between lookup and read.
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "video/mp2t")
		w.Write(data)
	}
}

// StatusHandler handles GET /api/stream/status.
func StatusHandler(store *stream.FrameStore, packager *stream.Packager, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "idle"
		if store.Len() > 0 {
			status = "active"
		}
		writeJSON(w, http.StatusOK, dto.StreamStatus{
			Status:          status,
			FPS:             store.FPS(),
			BufferedFrames:  store.Len(),
			Segments:        packager.Count(),
			SegmentDuration: cfg.SegmentDuration,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
