package entity

// ChatRequest one user message sent to the gateway
type ChatRequest struct {
	Message   string
	SessionID string
}

// ChatReply what the gateway produced for one ChatRequest
type ChatReply struct {
	SessionID    string
	Response     string
	Intent       Intent
	Lookup       LookupResult
	Notification *NotificationOutcome
}

// Prompt is the input of one LLM completion.
type Prompt struct {
	System   string
	Question string
}

// Notification is a text relayed to the messaging channel.
type Notification struct {
	Message string
}

// NotificationOutcome delivery status of one notification attempt
type NotificationOutcome struct {
	Sent   bool
	Status string
}
