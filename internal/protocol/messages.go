// Package protocol defines the JSON messages exchanged between the
// match server and bot clients. Every message carries a "type" field
// used for dispatch.
package protocol

// Message type identifiers.
const (
	// Client -> Server
	TypeConnect = "connect"
	TypeMove    = "move"

	// Server -> Client
	TypeJoined      = "joined"
	TypeMoveRequest = "move_request"
	TypeUpdate      = "update"
	TypeGameEnd     = "game_end"
	TypeError       = "error"
)

// State is the wire form of a game snapshot. Tokens use their string
// form ("peasant_a", "mandarin_b"), sides are "A" and "B".
type State struct {
	Board map[string][]string `json:"board"`
	Score map[string]int      `json:"score"`
	Round int                 `json:"round"`
}

// Event is the wire form of one resolution event. Only the fields
// relevant to the event's type are populated.
type Event struct {
	Type   string         `json:"type"`
	Pos    string         `json:"pos,omitempty"`
	From   string         `json:"from_pos,omitempty"`
	To     string         `json:"to_pos,omitempty"`
	Piece  string         `json:"piece,omitempty"`
	Pieces []string       `json:"pieces,omitempty"`
	Team   string         `json:"team,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Score  map[string]int `json:"score,omitempty"`
}

// Connect is sent by a client when connecting.
type Connect struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewConnect creates a connect message.
func NewConnect(name string) *Connect {
	return &Connect{Type: TypeConnect, Name: name}
}

// Joined confirms a client's seat in a match.
type Joined struct {
	Type     string `json:"type"`
	Side     string `json:"side"`
	Opponent string `json:"opponent"`
}

// NewJoined creates a joined message.
func NewJoined(side, opponent string) *Joined {
	return &Joined{Type: TypeJoined, Side: side, Opponent: opponent}
}

// MoveRequest asks a client to choose its next move.
type MoveRequest struct {
	Type            string   `json:"type"`
	Side            string   `json:"side"`
	Round           int      `json:"round"`
	State           State    `json:"state"`
	Available       []string `json:"available"`
	TimeRemainingMs int      `json:"time_remaining_ms"`
}

// Move is the client's answer to a MoveRequest.
type Move struct {
	Type string `json:"type"`
	Pos  string `json:"pos"`
	Way  string `json:"way"`
}

// NewMove creates a move message.
func NewMove(pos, way string) *Move {
	return &Move{Type: TypeMove, Pos: pos, Way: way}
}

// Update is broadcast after every committed move.
type Update struct {
	Type   string  `json:"type"`
	Side   string  `json:"side"`
	Pos    string  `json:"pos"`
	Way    string  `json:"way"`
	Events []Event `json:"events"`
	State  State   `json:"state"`
}

// GameEnd is broadcast when the match is over.
type GameEnd struct {
	Type   string         `json:"type"`
	Reason string         `json:"reason"`
	Score  map[string]int `json:"score"`
	Winner string         `json:"winner,omitempty"`
	Draw   bool           `json:"draw,omitempty"`
}

// Error reports a protocol or move failure to a client.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError creates an error message.
func NewError(code, message string) *Error {
	return &Error{Type: TypeError, Code: code, Message: message}
}
