package executor

// Message is one chat turn sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source selects one upstream content class for live search.
type Source struct {
	Type     string   `json:"type"`
	XHandles []string `json:"x_handles,omitempty"`
}

// SearchParameters is the provider's live-search control block.
type SearchParameters struct {
	Mode             string   `json:"mode"`
	ReturnCitations  bool     `json:"return_citations"`
	MaxSearchResults int      `json:"max_search_results"`
	Sources          []Source `json:"sources"`
	FromDate         string   `json:"from_date,omitempty"`
	ToDate           string   `json:"to_date,omitempty"`
}

// ChatRequest is the request body for the chat completions endpoint.
type ChatRequest struct {
	Model            string           `json:"model"`
	Messages         []Message        `json:"messages"`
	SearchParameters SearchParameters `json:"search_parameters"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float64          `json:"temperature"`
}

// RawResponse is the unparsed answer text and its citation URLs.
type RawResponse struct {
	Content   string
	Citations []string
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}
