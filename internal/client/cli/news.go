package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/newsexplorer/internal/client/keywords"
	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/client/search"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
)

// keywordsShown is how many keywords the saved headline names before
// counting the rest.
const keywordsShown = 2

// Search runs a news search and prints the first page of results.
func (a *App) Search(ctx context.Context, query string) error {
	fmt.Fprintln(a.out, searchingText)

	_, err := a.search.Search(ctx, query)
	switch {
	case errors.Is(err, common.ErrSuperseded):
		return err
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, search.EmptyQueryMessage)
		return err
	case err != nil:
		writeErrorPanel(a.out)
		return err
	}

	if a.search.NothingFound() {
		writeNothingFound(a.out)
		return nil
	}
	a.printResults(0)
	return nil
}

// More reveals the next page of search results.
func (a *App) More(context.Context) error {
	if !a.search.HasMore() {
		fmt.Fprintln(a.out, "No more results.")
		return nil
	}
	from := len(a.search.Visible())
	a.search.ShowMore()
	a.printResults(from)
	return nil
}

// printResults prints the visible results starting at position from.
func (a *App) printResults(from int) {
	if from == 0 {
		fmt.Fprintf(a.out, "Search results for %q\n", a.search.Query())
	}
	visible := a.search.Visible()
	for i := from; i < len(visible); i++ {
		writeArticle(a.out, i+1, visible[i], a.session.IsSaved(visible[i].URL), "")
	}
	if a.search.HasMore() {
		fmt.Fprintln(a.out, "Type 'more' to show more.")
	}
}

// pick parses a 1-based position in a list of n items.
func (a *App) pick(arg string, n int) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		fmt.Fprintf(a.out, "No article number %q.\n", arg)
		return 0, false
	}
	return i - 1, true
}

// Save toggles the saved state of the visible search result at position arg.
func (a *App) Save(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, signInToSave)
		return common.ErrUnauthenticated
	}

	visible := a.search.Visible()
	i, ok := a.pick(arg, len(visible))
	if !ok {
		return common.ErrNotFound
	}
	art := visible[i]

	saved, err := a.session.ToggleSaved(ctx, art)
	if err != nil {
		if !errors.Is(err, common.ErrSuperseded) {
			writeErrorPanel(a.out)
		}
		return err
	}
	if saved {
		fmt.Fprintf(a.out, "Saved: %s\n", art.Title)
	} else {
		fmt.Fprintf(a.out, "Removed from saved: %s\n", art.Title)
	}
	return nil
}

// Saved reloads the saved articles and prints the page: headline, keyword
// summary and cards. A failed reload prints the error panel instead.
func (a *App) Saved(ctx context.Context) error {
	u := a.session.Snapshot().CurrentUser
	if u == nil {
		fmt.Fprintln(a.out, notSignedInText)
		return common.ErrUnauthenticated
	}
	if err := a.session.ReloadSaved(ctx); err != nil {
		if !errors.Is(err, common.ErrSuperseded) {
			writeErrorPanel(a.out)
		}
		return err
	}

	saved := a.session.SavedArticles()
	fmt.Fprintln(a.out, "Saved articles")
	fmt.Fprintln(a.out, models.SavedHeadline(u.Name, len(saved)))
	if kw := a.session.Keywords(); len(kw) > 0 {
		fmt.Fprintf(a.out, "By keywords: %s\n", keywords.Summary(kw, keywordsShown))
	}
	for i, s := range saved {
		tag := ""
		if len(s.Keywords) > 0 {
			tag = s.Keywords[0]
		}
		writeArticle(a.out, i+1, s.Article, true, tag)
	}
	return nil
}

// Delete removes the saved article at position arg of the saved list.
func (a *App) Delete(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, notSignedInText)
		return common.ErrUnauthenticated
	}

	saved := a.session.SavedArticles()
	i, ok := a.pick(arg, len(saved))
	if !ok {
		return common.ErrNotFound
	}

	err := a.session.DeleteArticle(ctx, saved[i].URL)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Removed from saved: %s\n", saved[i].Title)
	case errors.Is(err, common.ErrSuperseded):
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Internal error: the article is no longer in the saved list.")
	default:
		writeErrorPanel(a.out)
	}
	return err
}
