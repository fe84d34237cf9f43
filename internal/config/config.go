package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port             int
	DatabasePath     string
	LogDirectory     string
	ImageDirectory   string
	SegmentDirectory string

	FrameBufferCapacity int // Ring buffer size for raw frames
	SegmentDuration     int // Nominal segment length in seconds, also the packaging period
	MaxSegments         int // Segments kept before FIFO eviction
	MJPEGFrameInterval  int // Poll interval for MJPEG connections in milliseconds

	CaptureEveryNth      int // Sample every Nth ingested frame into the capture buffer
	CaptureBufferLimit   int
	CaptureFlushInterval int // Seconds between capture flushes

	JWTSecret       string
	TokenTTLMinutes int

	SignalingUpstreamURL string
}

func Load() *Config {
	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		DatabasePath:     getEnv("DATABASE_PATH", filepath.Join(".", "data", "smoki.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		ImageDirectory:   getEnv("IMAGE_DIR", filepath.Join(".", "images")),
		SegmentDirectory: getEnv("SEGMENT_DIR", filepath.Join(".", "segments")),

		FrameBufferCapacity: getEnvAsInt("FRAME_BUFFER_CAPACITY", 60),
		SegmentDuration:     getEnvAsInt("SEGMENT_DURATION", 2),
		MaxSegments:         getEnvAsInt("MAX_SEGMENTS", 4),
		MJPEGFrameInterval:  getEnvAsInt("MJPEG_FRAME_INTERVAL_MS", 33),

		CaptureEveryNth:      getEnvAsInt("CAPTURE_EVERY_NTH", 30),
		CaptureBufferLimit:   getEnvAsInt("CAPTURE_BUFFER_LIMIT", 10),
		CaptureFlushInterval: getEnvAsInt("CAPTURE_FLUSH_INTERVAL", 30),

		JWTSecret:       getEnv("SECRET_KEY", "dev-only-secret-change-me"),
		TokenTTLMinutes: getEnvAsInt("TOKEN_TTL_MINUTES", 60*24),

		SignalingUpstreamURL: getEnv("RPI_WEBRTC_URL", "ws://192.168.100.198:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
