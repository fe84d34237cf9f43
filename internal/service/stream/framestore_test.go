package stream

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

func TestFrameStore_LatestAfterAdd(t *testing.T) {
	store := NewFrameStore(60)

	if frame, seq := store.Latest(); frame != nil || seq != 0 {
		t.Errorf("Expected empty store, got frame=%v seq=%d", frame, seq)
	}

	for i := 1; i <= 5; i++ {
		frame := []byte(fmt.Sprintf("frame-%d", i))
		store.Add(frame)

		latest, seq := store.Latest()
		if !bytes.Equal(latest, frame) {
			t.Errorf("After add %d: Latest() = %q, expected %q", i, latest, frame)
		}
		if seq != uint64(i) {
			t.Errorf("After add %d: seq = %d, expected %d", i, seq, i)
		}
	}
}

func TestFrameStore_CapacityEviction(t *testing.T) {
	capacity := 3
	store := NewFrameStore(capacity)

	for i := 0; i <= capacity; i++ {
		store.Add([]byte(fmt.Sprintf("frame-%d", i)))
	}

	if store.Len() != capacity {
		t.Errorf("Len() = %d, expected %d", store.Len(), capacity)
	}

	recent := store.Recent(capacity + 1)
	if len(recent) != capacity {
		t.Fatalf("Recent(%d) returned %d frames, expected %d", capacity+1, len(recent), capacity)
	}
	for _, frame := range recent {
		if bytes.Equal(frame, []byte("frame-0")) {
			t.Error("Oldest frame should have been evicted")
		}
	}
}

func TestFrameStore_RecentOrder(t *testing.T) {
	store := NewFrameStore(60)
	for i := 1; i <= 5; i++ {
		store.Add([]byte(fmt.Sprintf("frame-%d", i)))
	}

	tests := []struct {
		n        int
		expected []string
	}{
		{3, []string{"frame-3", "frame-4", "frame-5"}},
		{5, []string{"frame-1", "frame-2", "frame-3", "frame-4", "frame-5"}},
		{10, []string{"frame-1", "frame-2", "frame-3", "frame-4", "frame-5"}},
		{1, []string{"frame-5"}},
	}

	for _, tt := range tests {
		recent := store.Recent(tt.n)
		if len(recent) != len(tt.expected) {
			t.Errorf("Recent(%d) returned %d frames, expected %d", tt.n, len(recent), len(tt.expected))
			continue
		}
		for i, want := range tt.expected {
			if string(recent[i]) != want {
				t.Errorf("Recent(%d)[%d] = %q, expected %q", tt.n, i, recent[i], want)
			}
		}
	}
}

func TestFrameStore_RecentEmpty(t *testing.T) {
	store := NewFrameStore(60)
	if recent := store.Recent(5); len(recent) != 0 {
		t.Errorf("Recent on empty store returned %d frames", len(recent))
	}
}

func TestFrameStore_FPSWindow(t *testing.T) {
	store := NewFrameStore(60)

	current := time.Now()
	store.now = func() time.Time { return current }
	store.windowStart = current

	// 7 adds within the first window.
	for i := 0; i < 7; i++ {
		store.Add([]byte("x"))
	}
	if fps := store.FPS(); fps != 0 {
		t.Errorf("FPS before window elapsed = %d, expected 0", fps)
	}

	// Window closes: the 7 arrivals become the measured rate.
	current = current.Add(1100 * time.Millisecond)
	if fps := store.FPS(); fps != 7 {
		t.Errorf("FPS after window = %d, expected 7", fps)
	}
	if fps := store.FPS(); fps != 7 {
		t.Errorf("FPS should stay stable within the next window, got %d", fps)
	}

	// No arrivals in the next window: rate drops to 0.
	current = current.Add(1100 * time.Millisecond)
	if fps := store.FPS(); fps != 0 {
		t.Errorf("FPS after idle window = %d, expected 0", fps)
	}
}

func TestFrameStore_ConcurrentAdds(t *testing.T) {
	store := NewFrameStore(30)
	done := make(chan struct{})

	for w := 0; w < 4; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				store.Add([]byte("frame"))
				store.Latest()
				store.Recent(10)
			}
		}()
	}
	for w := 0; w < 4; w++ {
		<-done
	}

	if store.Len() != 30 {
		t.Errorf("Len() = %d, expected capacity 30", store.Len())
	}
}
