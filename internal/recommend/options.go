package recommend

// Choice is a selectable filter value with its display label.
type Choice struct {
	Label string
	Value string
}

// Default filters used when the user picks none.
const (
	DefaultGenre  = "fiction"
	DefaultLength = "novels"
)

// Genres are the genre filters offered to the user.
var Genres = []Choice{
	{Label: "Fiction", Value: "fiction"},
	{Label: "Non-Fiction", Value: "non-fiction"},
	{Label: "Thriller", Value: "thriller"},
	{Label: "Romance", Value: "romance"},
	{Label: "Sci-fi", Value: "sci-fi"},
	{Label: "Biography", Value: "biography"},
	{Label: "Comedy", Value: "comedy"},
	{Label: "Poetry", Value: "poetry"},
	{Label: "Self-help", Value: "self-help"},
	{Label: "Finance", Value: "finance"},
	{Label: "Travel", Value: "travel"},
	{Label: "Art", Value: "art"},
}

// Lengths are the book length filters offered to the user.
var Lengths = []Choice{
	{Label: "Short Stories", Value: "short-stories"},
	{Label: "Novellas", Value: "short-novels"},
	{Label: "Novels", Value: "novels"},
}

// Values returns the value of every choice, in order.
func Values(choices []Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Value
	}
	return out
}
