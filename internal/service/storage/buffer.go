package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/logger"
	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository"
)

type bufferedCapture struct {
	timestamp time.Time
	data      []byte
}

// BufferService samples every Nth ingested frame into a bounded in-memory
// buffer and periodically flushes the buffered captures to disk and the
// capture repository. Sampling is a short critical section and drops frames
// when the buffer is full, so it never slows the ingest path.
type BufferService struct {
	imagesDir     string
	captures      []bufferedCapture
	bufferLimit   int
	everyNth      int
	frameCount    int
	mu            sync.Mutex
	flushInterval int
	logger        *logger.Logger
	captureRepo   repository.CaptureRepository
}

// NewBufferService creates a BufferService with the target directory and repository.
func NewBufferService(config *config.Config, logger *logger.Logger, captureRepo repository.CaptureRepository) *BufferService {
	return &BufferService{
		imagesDir:     config.ImageDirectory,
		captures:      make([]bufferedCapture, 0),
		bufferLimit:   config.CaptureBufferLimit,
		everyNth:      config.CaptureEveryNth,
		flushInterval: config.CaptureFlushInterval,
		logger:        logger,
		captureRepo:   captureRepo,
	}
}

// Run starts a ticker loop that periodically flushes captures until ctx is
// cancelled.
func (s *BufferService) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(s.flushInterval) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.FlushCaptures()
		}
	}
}

// Sample counts an ingested frame and buffers every Nth one. Frames are
// dropped silently when the buffer is at its limit.
func (s *BufferService) Sample(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameCount++
	if s.frameCount%s.everyNth != 0 {
		return
	}
	if len(s.captures) >= s.bufferLimit {
		return
	}

	data := make([]byte, len(frame))
	copy(data, frame)
	s.captures = append(s.captures, bufferedCapture{timestamp: time.Now(), data: data})
}

// FlushCaptures writes buffered captures to disk, records them in the
// repository, and resets the buffer.
func (s *BufferService) FlushCaptures() {
	s.mu.Lock()
	captures := s.captures
	s.captures = make([]bufferedCapture, 0)
	s.mu.Unlock()

	if len(captures) == 0 {
		return
	}

	if err := os.MkdirAll(s.imagesDir, 0755); err != nil {
		s.logger.Error("Error creating directory: %v", err)
		return
	}

	savedCount := 0
	for _, capture := range captures {
		filename := fmt.Sprintf("%s.jpg", capture.timestamp.Format("2006-01-02_15-04_05.000"))
		fullpath := filepath.Join(s.imagesDir, filename)

		if err := os.WriteFile(fullpath, capture.data, 0644); err != nil {
			s.logger.Error("Error saving capture %s: %v", filename, err)
			continue
		}

		if s.captureRepo != nil {
			record := &model.Capture{
				Filename:  filename,
				Timestamp: capture.timestamp,
				FilePath:  fullpath,
				FileSize:  int64(len(capture.data)),
			}
			if _, err := s.captureRepo.Insert(record); err != nil {
				s.logger.Error("Error saving capture to database %s: %v", filename, err)
				continue
			}
		}

		savedCount++
	}

	s.logger.Info("Flushed %d captures to disk", savedCount)
}
