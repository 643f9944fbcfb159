package api

import "github.com/katalvlaran/hillclimb/heightmap"

// Search modes.
const (
	ModeSingle = "single"
	ModeMulti  = "multi"
	ModeBoth   = "both"
)

// SearchRequest asks for the fewest steps across a textual heightmap.
type SearchRequest struct {
	Heightmap string `json:"heightmap" binding:"required"`
	Mode      string `json:"mode"` // single, multi or both (default)
	Path      bool   `json:"path"` // include the route of the single-source search
}

// PositionDTO is a grid cell on the wire.
type PositionDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toDTO(p heightmap.Position) PositionDTO {
	return PositionDTO{X: p.X, Y: p.Y}
}

// SingleDTO is the fewest-steps result from the designated start.
// Distance is null when the goal cannot be reached.
type SingleDTO struct {
	Reachable bool          `json:"reachable"`
	Distance  *int          `json:"distance"`
	Expanded  int           `json:"expanded"`
	Path      []PositionDTO `json:"path,omitempty"`
}

// MultiDTO is the fewest-steps result from any lowest cell.
// Distance and Start are null when no candidate reaches the goal.
type MultiDTO struct {
	Reachable  bool         `json:"reachable"`
	Distance   *int         `json:"distance"`
	Start      *PositionDTO `json:"start"`
	Candidates int          `json:"candidates"`
	Strategy   string       `json:"strategy"`
}

// SearchResponse is returned by POST /v1/search.
type SearchResponse struct {
	RequestID string      `json:"request_id"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Start     PositionDTO `json:"start"`
	Goal      PositionDTO `json:"goal"`
	Single    *SingleDTO  `json:"single,omitempty"`
	Multi     *MultiDTO   `json:"multi,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}
