package model

// TurnInput is the public input for processing one conversation turn.
type TurnInput struct {
	ThreadID    string `json:"thread_id"`
	UserMessage string `json:"user_message"`
}

// TurnState is the per-turn working record flowing through the graph nodes.
// Only Profile survives the turn (persisted per thread); everything else is
// turn-scoped. All fields are initialised by NewTurnState before any node
// reads them.
type TurnState struct {
	ThreadID    string  `json:"thread_id"`
	UserMessage string  `json:"user_message"`
	Intent      Intent  `json:"intent"`
	Profile     Profile `json:"profile"`

	NeedsClarification    bool   `json:"needs_clarification"`
	ClarificationQuestion string `json:"clarification_question"`
	Answer                string `json:"answer"`

	Actions []Action `json:"actions"`

	// Observability
	ProductsDebug []Product `json:"products_debug"`
	ToolError     string    `json:"tool_error,omitempty"`
}

// NewTurnState builds a fully initialised state from the incoming message and
// the thread's persisted profile. A nil profile yields a fresh empty one.
func NewTurnState(in TurnInput, profile Profile) *TurnState {
	if profile == nil {
		profile = Profile{}
	}
	return &TurnState{
		ThreadID:      in.ThreadID,
		UserMessage:   in.UserMessage,
		Intent:        IntentOther,
		Profile:       profile,
		Actions:       []Action{},
		ProductsDebug: []Product{},
	}
}
