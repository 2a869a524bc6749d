package replay

// FrameInput records the input of a single tick. Directions hold pressure
// levels (0 when released); A and Up also carry the edges seen this tick.
type FrameInput struct {
	F      int   `json:"f"`                // Frame number
	DT     int64 `json:"dt"`               // Frame time in milliseconds
	L      int   `json:"l,omitempty"`      // Left
	R      int   `json:"r,omitempty"`      // Right
	U      int   `json:"u,omitempty"`      // Up
	D      int   `json:"d,omitempty"`      // Down
	A      bool  `json:"a,omitempty"`      // A held
	AP     bool  `json:"ap,omitempty"`     // A pressed
	AR     bool  `json:"ar,omitempty"`     // A released
	UP     bool  `json:"up,omitempty"`     // Up pressed
	UR     bool  `json:"ur,omitempty"`     // Up released
	Analog bool  `json:"analog,omitempty"` // Pressure is analog
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version is written into new recordings
const Version = "2.0"
