package stream

import (
	"sync"
	"time"
)

// FrameStore keeps the most recent frames pushed by the edge device in a bounded
// FIFO buffer, together with the latest frame and a frames-per-second counter.
// Frame bytes are opaque; no decoding is ever attempted.
type FrameStore struct {
	mu       sync.Mutex
	frames   [][]byte
	capacity int

	latest    []byte
	latestSeq uint64

	windowCount int
	windowStart time.Time
	rate        int

	now func() time.Time
}

// NewFrameStore creates a FrameStore holding at most capacity frames.
func NewFrameStore(capacity int) *FrameStore {
	if capacity < 1 {
		capacity = 1
	}
	return &FrameStore{
		frames:      make([][]byte, 0, capacity),
		capacity:    capacity,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Add stores frame as the new latest frame and appends it to the buffer,
// evicting the oldest frame when the buffer is full. The new frame is visible
// to Latest before Add returns.
func (s *FrameStore) Add(frame []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = frame
	s.latestSeq++

	if len(s.frames) >= s.capacity {
		s.frames = s.frames[1:]
	}
	s.frames = append(s.frames, frame)

	s.windowCount++
	s.rollWindow(s.now())
	return true
}

// Latest returns the most recently added frame and its sequence number.
// The sequence number increases with every Add, so callers can detect a new
// frame without comparing bytes. Returns (nil, 0) when nothing was added yet.
func (s *FrameStore) Latest() ([]byte, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.latestSeq
}

// Recent returns up to the n most recently added frames, oldest first.
func (s *FrameStore) Recent(n int) [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.frames) {
		n = len(s.frames)
	}
	if n <= 0 {
		return nil
	}
	out := make([][]byte, n)
	copy(out, s.frames[len(s.frames)-n:])
	return out
}

// Len returns the number of buffered frames.
func (s *FrameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// FPS returns the frame count of the last fully elapsed 1-second window.
func (s *FrameStore) FPS() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollWindow(s.now())
	return s.rate
}

// rollWindow closes the current measurement window once a full second has
// elapsed. Caller must hold the lock.
func (s *FrameStore) rollWindow(t time.Time) {
	if t.Sub(s.windowStart) >= time.Second {
		s.rate = s.windowCount
		s.windowCount = 0
		s.windowStart = t
	}
}
