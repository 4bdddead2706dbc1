package model

import "time"

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry of an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Products  []Product `json:"products,omitempty"`
}

// AssistantRequest is the payload sent to the assistant.
// FarmaciaID and ClienteID are accepted for future personalisation.
type AssistantRequest struct {
	Mensaje    string `json:"mensaje"`
	FarmaciaID string `json:"farmaciaId"`
	ClienteID  string `json:"clienteId"`
}

// AssistantResponse is the canned reply chosen for a message.
type AssistantResponse struct {
	Texto     string    `json:"texto"`
	Productos []Product `json:"productos,omitempty"`
}

// QuickAction is a one-tap shortcut that sends a known trigger phrase.
type QuickAction struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Message string `json:"message"`
}
