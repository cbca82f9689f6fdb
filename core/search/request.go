package search

import (
	"fmt"
	"strings"

	"github.com/leofalp/livesearch/core/executor"
	"github.com/leofalp/livesearch/core/validate"
)

// Token budgets per analysis mode.
const (
	BasicMaxTokens         = 2000
	ComprehensiveMaxTokens = 4000
)

// Sources maps a source kind to the provider's live-search sources. Handles
// only apply to the X source.
func Sources(kind SourceKind, handles []string) []executor.Source {
	x := executor.Source{Type: "x"}
	if len(handles) > 0 {
		x.XHandles = append([]string(nil), handles...)
	}

	switch kind {
	case SourceNews:
		return []executor.Source{{Type: "news"}, {Type: "web"}}
	case SourceSocial:
		return []executor.Source{x}
	case SourceGeneral:
		return []executor.Source{{Type: "web"}, {Type: "news"}, x}
	default:
		return []executor.Source{{Type: "web"}}
	}
}

// BuildRequest derives the provider request from q, its validated date
// range and the model name. The result depends only on its arguments.
func BuildRequest(q Query, dates validate.Range, model string) executor.ChatRequest {
	system, user := prompts(q)

	maxTokens := BasicMaxTokens
	temperature := 0.3
	if q.Mode == ModeComprehensive {
		maxTokens = ComprehensiveMaxTokens
		temperature = 0.2
	}

	return executor.ChatRequest{
		Model: model,
		Messages: []executor.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		SearchParameters: executor.SearchParameters{
			Mode:             "on",
			ReturnCitations:  true,
			MaxSearchResults: q.MaxResults,
			Sources:          Sources(q.Kind, q.Handles),
			FromDate:         dates.From,
			ToDate:           dates.To,
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

var kindFocus = map[SourceKind]string{
	SourceWeb:     "Search the web for authoritative, up-to-date pages.",
	SourceNews:    "Search recent news coverage. Prefer reputable outlets and always report publication dates.",
	SourceSocial:  "Search posts on X. Report the author handle of each post and keep quotes verbatim.",
	SourceGeneral: "Search the web, news outlets and posts on X, and combine what they say.",
}

const basicFormat = `Respond with a single JSON object and nothing else:
{
  "results": [
    {"title": "...", "snippet": "...", "url": "...", "source": "...", "published_date": "YYYY-MM-DD", "author": "..."}
  ],
  "summary": "..."
}`

const comprehensiveFormat = `Respond with a single JSON object and nothing else:
{
  "comprehensive_analysis": "...",
  "key_findings": ["..."],
  "timeline": [{"date": "YYYY-MM-DD", "event": "..."}],
  "direct_quotes": [{"quote": "...", "speaker": "...", "source": "..."}],
  "related_context": ["..."],
  "multiple_perspectives": [{"viewpoint": "...", "summary": "..."}],
  "implications": ["..."],
  "verification_status": {"verified": ["..."], "unverified": ["..."]},
  "results": [
    {"title": "...", "snippet": "...", "url": "...", "source": "...", "published_date": "YYYY-MM-DD", "author": "..."}
  ],
  "summary": "..."
}`

func prompts(q Query) (system, user string) {
	var sb strings.Builder
	sb.WriteString("You are a research assistant with live search access. ")
	sb.WriteString(kindFocus[q.Kind])
	sb.WriteString(" Cite every claim with the sources you used.\n\n")

	if q.Mode == ModeComprehensive {
		sb.WriteString("Produce an in-depth analysis: key findings, a dated timeline, direct quotes, ")
		sb.WriteString("competing perspectives, implications and which claims are verified.\n\n")
		sb.WriteString(comprehensiveFormat)
	} else {
		sb.WriteString("Produce a concise list of the most relevant results.\n\n")
		sb.WriteString(basicFormat)
	}

	user = fmt.Sprintf("Query: %s\nReturn at most %d results.", q.Text, q.MaxResults)
	if len(q.Handles) > 0 {
		user += "\nOnly consider posts from: @" + strings.Join(q.Handles, ", @") + "."
	}
	return sb.String(), user
}
