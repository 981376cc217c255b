package inference

// Request is the body POSTed to the generate endpoint
type Request struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Response is the relayed answer
type Response struct {
	Response string `json:"response"`
}

// wireResponse distinguishes a missing response field from an empty one
type wireResponse struct {
	Response *string `json:"response"`
	Error    string  `json:"error"`
}
