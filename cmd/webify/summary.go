package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"webify/internal/pipeline"
)

const (
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// renderSummary formats a finished conversion for terminal output.
func renderSummary(result *pipeline.Result, colorize bool) string {
	var b strings.Builder

	headline := fmt.Sprintf("Converted %d cards into %s", result.Cards, result.TargetDir)
	if colorize {
		headline = ansiGreen + headline + ansiReset
	}
	b.WriteString(headline)
	b.WriteString("\n")

	names := sortedDeckNames(result.Decks)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(result.Decks[name])})
	}
	footer := []string{"Total", strconv.Itoa(result.Cards)}
	b.WriteString(renderTable([]string{"Deck", "Cards"}, rows, footer, []columnAlignment{alignLeft, alignRight}))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Media files: %d   Duration: %s", result.MediaFiles, result.Duration.Round(time.Millisecond))
	if n := len(result.Unresolved); n > 0 {
		warning := fmt.Sprintf("\nUnresolved image references: %d (see log warnings)", n)
		if colorize {
			warning = ansiYellow + warning + ansiReset
		}
		b.WriteString(warning)
	}
	return b.String()
}

// sortedDeckNames orders deck names with locale-aware collation so accented
// and mixed-case names sort the way a reader expects.
func sortedDeckNames(decks map[string]int) []string {
	names := make([]string, 0, len(decks))
	for name := range decks {
		names = append(names, name)
	}
	collate.New(language.Und, collate.IgnoreCase).SortStrings(names)
	return names
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
