package recommend

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// SuggestionCount is the number of titles every prompt asks for.
const SuggestionCount = 16

const replyFormat = `Your response must be ONLY a valid JSON array of objects with the following structure:
[{"title": "Book Title 1"}, {"title": "Book Title 2"}, ...]

Do not include any explanations, headers, or additional text. Return ONLY the JSON array.`

// CategoryPrompt asks for popular titles in a genre and length bucket.
func CategoryPrompt(genre, length string) string {
	return fmt.Sprintf("Suggest %d popular and highly-rated books in the %s genre, focusing on %s length books.\n\n%s",
		SuggestionCount, genre, length, replyFormat)
}

// SimilarTitlePrompt asks for titles resembling title, excluding title itself.
func SimilarTitlePrompt(title, genre string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the book %q", title)
	if genre != "" {
		fmt.Fprintf(&sb, " in the %s genre", genre)
	}
	fmt.Fprintf(&sb, ", suggest %d similar book titles that a reader might enjoy. Do not include %q in the recommendations.\n\n%s",
		SuggestionCount, title, replyFormat)
	return sb.String()
}

type keywordData struct {
	Genre      string `json:"genre"`
	BookLength string `json:"bookLength"`
	SearchTerm string `json:"searchTerm"`
}

// KeywordPrompt embeds the user's filters and keyword as a JSON object.
func KeywordPrompt(genre, length, keyword string) string {
	data, _ := json.Marshal(keywordData{Genre: genre, BookLength: length, SearchTerm: keyword})
	return fmt.Sprintf("Based on the data below, suggest %d book titles.\n\ndata: %s\n\n%s",
		SuggestionCount, data, replyFormat)
}
