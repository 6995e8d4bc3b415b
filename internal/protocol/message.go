package protocol

type MsgType string

const (
	MsgWelcome MsgType = "welcome"
	MsgState   MsgType = "state"
	MsgPrompt  MsgType = "prompt"
	MsgInfo    MsgType = "info"
	MsgAction  MsgType = "action"
)

// ServerMessage is the single outbound envelope. One of the optional
// fields is populated depending on Type; zero fields stay off the wire.
type ServerMessage struct {
	Type        MsgType       `json:"type"`
	PlayerIndex *int          `json:"player_index,omitempty"`
	State       *GameSnapshot `json:"state,omitempty"`
	Text        string        `json:"text,omitempty"`
}

// ClientMessage is the inbound envelope, decoded once at the network
// boundary. Anything that does not parse into an Action is ignored.
type ClientMessage struct {
	Type      MsgType `json:"type"`
	Action    string  `json:"action,omitempty"`
	CardIndex *int    `json:"card_index,omitempty"`
	NewColor  *string `json:"new_color,omitempty"`
}

func Welcome(seat int) ServerMessage {
	return ServerMessage{Type: MsgWelcome, PlayerIndex: &seat}
}

func Prompt(seat int) ServerMessage {
	return ServerMessage{Type: MsgPrompt, PlayerIndex: &seat}
}

func Info(text string) ServerMessage {
	return ServerMessage{Type: MsgInfo, Text: text}
}

func State(s *GameSnapshot) ServerMessage {
	return ServerMessage{Type: MsgState, State: s}
}
