package dto

// IngestResponse is returned to the edge device after a frame upload.
type IngestResponse struct {
	Success        bool `json:"success"`
	FPS            int  `json:"fps"`
	BufferedFrames int  `json:"buffered_frames"`
}

// StreamStatus describes the current state of the relay.
type StreamStatus struct {
	Status          string `json:"status"`
	FPS             int    `json:"fps"`
	BufferedFrames  int    `json:"buffered_frames"`
	Segments        int    `json:"segments"`
	SegmentDuration int    `json:"segment_duration"`
}
