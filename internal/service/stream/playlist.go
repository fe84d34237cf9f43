package stream

import (
	"fmt"

	"github.com/grafov/m3u8"
)

// RenderPlaylist builds an HLS media playlist for the given segments, oldest
// first. Returns the empty string when there are no segments, which callers
// map to "stream not ready". The playlist is rendered as a closed list with an
// explicit end marker; segment URIs are relative to the playlist location.
func RenderPlaylist(segments []Segment) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	pl, err := m3u8.NewMediaPlaylist(0, uint(len(segments)))
	if err != nil {
		return "", fmt.Errorf("create playlist: %w", err)
	}
	for _, seg := range segments {
		if err := pl.Append(seg.Name(), seg.Duration, ""); err != nil {
			return "", fmt.Errorf("append segment %d: %w", seg.Index, err)
		}
	}
	pl.Close()

	return pl.Encode().String(), nil
}
