package stream

import (
	"strings"
	"testing"
)

func TestRenderPlaylist_Empty(t *testing.T) {
	doc, err := RenderPlaylist(nil)
	if err != nil {
		t.Fatalf("RenderPlaylist(nil) failed: %v", err)
	}
	if doc != "" {
		t.Errorf("Expected empty document for empty list, got %q", doc)
	}
}

func TestRenderPlaylist_Document(t *testing.T) {
	segments := []Segment{
		{Index: 2, Path: "/tmp/segment_2.ts", Duration: 2},
		{Index: 3, Path: "/tmp/segment_3.ts", Duration: 2},
		{Index: 4, Path: "/tmp/segment_4.ts", Duration: 2},
	}

	doc, err := RenderPlaylist(segments)
	if err != nil {
		t.Fatalf("RenderPlaylist failed: %v", err)
	}

	for _, want := range []string{"#EXTM3U", "#EXT-X-VERSION:3", "#EXT-X-TARGETDURATION:2", "#EXT-X-MEDIA-SEQUENCE:0", "#EXT-X-ENDLIST"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Playlist missing %q:\n%s", want, doc)
		}
	}

	if got := strings.Count(doc, "#EXTINF"); got != len(segments) {
		t.Errorf("Playlist has %d EXTINF lines, expected %d:\n%s", got, len(segments), doc)
	}

	// Segments appear oldest first, in ascending index order.
	pos2 := strings.Index(doc, "segment_2.ts")
	pos3 := strings.Index(doc, "segment_3.ts")
	pos4 := strings.Index(doc, "segment_4.ts")
	if pos2 < 0 || pos3 < 0 || pos4 < 0 {
		t.Fatalf("Playlist missing segment references:\n%s", doc)
	}
	if !(pos2 < pos3 && pos3 < pos4) {
		t.Errorf("Segments out of order at positions %d, %d, %d:\n%s", pos2, pos3, pos4, doc)
	}
}
