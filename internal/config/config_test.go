package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.FrameBufferCapacity != 60 {
		t.Errorf("FrameBufferCapacity = %d, expected 60", cfg.FrameBufferCapacity)
	}
	if cfg.SegmentDuration != 2 {
		t.Errorf("SegmentDuration = %d, expected 2", cfg.SegmentDuration)
	}
	if cfg.MaxSegments != 4 {
		t.Errorf("MaxSegments = %d, expected 4", cfg.MaxSegments)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		value    string
		def      int
		expected int
	}{
		{"10", 5, 10},
		{"", 5, 5},
		{"abc", 7, 7},
		{"-3", 5, -3},
	}

	for _, tt := range tests {
		t.Setenv("TEST_INT_KEY", tt.value)
		if got := getEnvAsInt("TEST_INT_KEY", tt.def); got != tt.expected {
			t.Errorf("getEnvAsInt(%q, %d) = %d, expected %d", tt.value, tt.def, got, tt.expected)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FRAME_BUFFER_CAPACITY", "30")
	t.Setenv("SEGMENT_DURATION", "4")

	cfg := Load()
	if cfg.FrameBufferCapacity != 30 {
		t.Errorf("FrameBufferCapacity = %d, expected 30", cfg.FrameBufferCapacity)
	}
	if cfg.SegmentDuration != 4 {
		t.Errorf("SegmentDuration = %d, expected 4", cfg.SegmentDuration)
	}
}
