package openrouter

import "encoding/json"

// ChatMessage is a single message in a completion request. The upstream
// API accepts a bare content object; no role is modeled.
type ChatMessage struct {
	Content string `json:"content"`
}

// Params holds optional parameters for a completion request.
type Params struct {
	// Model overrides the client's default model when non-empty.
	Model string

	// Temperature controls output randomness. The zero value selects the
	// default of 0.7; it is passed through otherwise, unvalidated.
	Temperature float64
}

// completionRequest is the wire payload for the completions endpoint.
type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// RawResponse is the undecoded JSON body of a successful completion call.
type RawResponse json.RawMessage

// completionEnvelope is the subset of the response the client extracts.
// Everything else in the body is left alone.
type completionEnvelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
