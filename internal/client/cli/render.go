package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
)

const (
	requestErrorTitle = "Sorry, something went wrong during the request."
	requestErrorText  = "Please try again later."
	nothingFoundTitle = "Nothing found"
	nothingFoundText  = "Sorry, but nothing matched your search terms."
	searchingText     = "Searching for news..."
	signInToSave      = "Sign in to save articles"

	excerptRunes = 160
)

func writeErrorPanel(w io.Writer) {
	fmt.Fprintln(w, requestErrorTitle)
	fmt.Fprintln(w, requestErrorText)
}

func writeNothingFound(w io.Writer) {
	fmt.Fprintln(w, nothingFoundTitle)
	fmt.Fprintln(w, nothingFoundText)
}

// writeArticle prints one card. tag, when set, is shown before the date.
func writeArticle(w io.Writer, n int, art models.Article, saved bool, tag string) {
	var head strings.Builder
	fmt.Fprintf(&head, "%2d. ", n)
	if tag != "" {
		fmt.Fprintf(&head, "[%s] ", tag)
	}
	head.WriteString(models.FormatDisplayDate(art.PublishedAt))
	if art.Source.Name != "" {
		fmt.Fprintf(&head, " | %s", art.Source.Name)
	}
	if saved {
		head.WriteString(" (saved)")
	}
	fmt.Fprintln(w, head.String())
	fmt.Fprintf(w, "    %s\n", art.Title)

	body := art.Content
	if body == "" {
		body = art.Description
	}
	if body != "" {
		fmt.Fprintf(w, "    %s\n", excerpt(body, excerptRunes))
	}
	fmt.Fprintf(w, "    %s\n", art.URL)
}

func excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max])) + "..."
}
