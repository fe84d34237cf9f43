package stream

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/skhartaye/SMOKI/internal/config"
	"github.com/skhartaye/SMOKI/internal/logger"
)

// Segment is an immutable packaged slice of recent frames backed by a file on
// disk. Indices are monotonic and never reused, even after eviction.
type Segment struct {
	Index    int
	Path     string
	Duration float64
}

// Name returns the artifact filename for the segment, e.g. "segment_3.ts".
func (s Segment) Name() string {
	return fmt.Sprintf("segment_%d.ts", s.Index)
}

// Packager periodically drains recent frames from a FrameStore into segment
// artifacts and maintains a bounded FIFO list of live segments. Evicting a
// segment deletes its artifact in the same critical section that removes it
// from the list, so the playlist never references a deleted artifact.
type Packager struct {
	mu        sync.Mutex
	segments  []Segment
	nextIndex int

	store       *FrameStore
	dir         string
	duration    int
	maxSegments int
	logger      *logger.Logger
}

// NewPackager creates a Packager writing artifacts into the configured
// segment directory, creating it if needed.
func NewPackager(store *FrameStore, config *config.Config, logger *logger.Logger) (*Packager, error) {
	if err := os.MkdirAll(config.SegmentDirectory, 0755); err != nil {
		return nil, fmt.Errorf("create segment directory: %w", err)
	}
	return &Packager{
		store:       store,
		dir:         config.SegmentDirectory,
		duration:    config.SegmentDuration,
		maxSegments: config.MaxSegments,
		logger:      logger,
	}, nil
}

// GenerateSegment packages the most recent frames into a new segment.
// The slice size tracks the measured throughput so a segment approximates the
// nominal duration, with a floor of one frame. Returns (nil, nil) when no
// frames are buffered. The index is reserved atomically, so concurrent calls
// can never mint the same index; on a write failure the segment list is left
// unchanged and the reserved index is skipped.
func (p *Packager) GenerateSegment() (*Segment, error) {
	n := p.store.FPS() * p.duration
	if n < 1 {
		n = 1
	}
	frames := p.store.Recent(n)
	if len(frames) == 0 {
		return nil, nil
	}

	p.mu.Lock()
	index := p.nextIndex
	p.nextIndex++
	p.mu.Unlock()

	seg := Segment{
		Index:    index,
		Path:     filepath.Join(p.dir, fmt.Sprintf("segment_%d.ts", index)),
		Duration: float64(p.duration),
	}

	// Artifact write happens outside the lock; the segment only becomes
	// visible once the write succeeded.
	var buf bytes.Buffer
	for _, frame := range frames {
		buf.Write(frame)
	}
	if err := os.WriteFile(seg.Path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write segment %d: %w", index, err)
	}

	p.mu.Lock()
	p.segments = append(p.segments, seg)
	if len(p.segments) > p.maxSegments {
		evicted := p.segments[0]
		p.segments = p.segments[1:]
		if err := os.Remove(evicted.Path); err != nil && !os.IsNotExist(err) {
			p.logger.Warning("Failed to delete evicted segment %d: %v", evicted.Index, err)
		}
	}
	p.mu.Unlock()

	p.logger.Info("Generated segment %d from %d frames (%d bytes)", index, len(frames), buf.Len())
	return &seg, nil
}

// Segments returns a copy of the current segment list, oldest first.
func (p *Packager) Segments() []Segment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// SegmentPath returns the artifact path for the given index, or false when the
// index was evicted or never created.
func (p *Packager) SegmentPath(index int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, seg := range p.segments {
		if seg.Index == index {
			return seg.Path, true
		}
	}
	return "", false
}

// Count returns the number of live segments.
func (p *Packager) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.segments)
}

// Close deletes all live segment artifacts. Called on shutdown.
func (p *Packager) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, seg := range p.segments {
		if err := os.Remove(seg.Path); err != nil && !os.IsNotExist(err) {
			p.logger.Warning("Failed to delete segment %d: %v", seg.Index, err)
		}
	}
	p.segments = nil
}
