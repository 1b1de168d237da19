package ws

// EventMessage is a bus-relayed event pushed to every live connection.
type EventMessage struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp any            `json:"timestamp"`
}

type EchoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
