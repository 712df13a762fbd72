package suggest

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// ReplyKind tags the outcome of parsing a service reply.
type ReplyKind int

const (
	// Malformed means the reply was not a JSON array of title objects.
	Malformed ReplyKind = iota
	// Parsed means Titles holds the decoded list.
	Parsed
)

func (k ReplyKind) String() string {
	if k == Parsed {
		return "parsed"
	}
	return "malformed"
}

// Reply is the parsed form of a service reply.
type Reply struct {
	Kind   ReplyKind
	Titles []book.CandidateTitle
}

type titleEntry struct {
	Title *string `json:"title"`
}

// ParseReply decodes content as a JSON array of {"title": ...} objects.
// A surrounding markdown code fence is tolerated. Entries with a blank title
// are skipped; any other shape yields a Malformed reply.
func ParseReply(content string) Reply {
	content = stripCodeFence(strings.TrimSpace(content))
	if !strings.HasPrefix(content, "[") {
		return Reply{Kind: Malformed}
	}

	var entries []titleEntry
	if err := json.Unmarshal([]byte(content), &entries); err != nil {
		return Reply{Kind: Malformed}
	}

	titles := make([]book.CandidateTitle, 0, len(entries))
	for _, e := range entries {
		if e.Title == nil {
			return Reply{Kind: Malformed}
		}
		title := strings.TrimSpace(*e.Title)
		if title == "" {
			continue
		}
		titles = append(titles, book.CandidateTitle{Title: title})
	}

	return Reply{Kind: Parsed, Titles: titles}
}

// stripCodeFence removes a ```json ... ``` wrapper if present.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[nl+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
