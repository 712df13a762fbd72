package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/recommend"
)

// GenresCmd represents the genres command
type GenresCmd struct{}

func (g *GenresCmd) Run(env *Env) error {
	var sb strings.Builder
	writeChoices(&sb, "Genres", recommend.Genres, recommend.DefaultGenre)
	sb.WriteString("\n")
	writeChoices(&sb, "Lengths", recommend.Lengths, recommend.DefaultLength)

	_, err := fmt.Fprint(env.Out, sb.String())
	return err
}

func writeChoices(sb *strings.Builder, heading string, choices []recommend.Choice, defaultValue string) {
	fmt.Fprintf(sb, "%s:\n", heading)
	for _, c := range choices {
		marker := ""
		if c.Value == defaultValue {
			marker = " (default)"
		}
		fmt.Fprintf(sb, "  %-14s %s%s\n", c.Value, c.Label, marker)
	}
}
