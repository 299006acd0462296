// Package keywords maintains the ordered, duplicate-free keyword index built
// from article tags.
//
// Keywords are compared case-sensitively; blank tags are skipped. Every
// function returns a fresh slice and never aliases its inputs.
package keywords

import (
	"fmt"
	"strings"
)

// Tagged is anything carrying keyword tags, e.g. models.Article or
// models.SavedArticle.
type Tagged interface {
	GetKeywords() []string
}

// Extract flattens the keywords of articles in order, keeping the first
// occurrence of each.
func Extract[T Tagged](articles []T) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, a := range articles {
		out = appendUnseen(out, seen, a.GetKeywords())
	}
	return out
}

// Merge appends the members of newKeywords not already in existing, in
// batch order. existing keeps its order.
func Merge(existing, newKeywords []string) []string {
	out := make([]string, 0, len(existing)+len(newKeywords))
	seen := make(map[string]struct{}, len(existing)+len(newKeywords))
	out = appendUnseen(out, seen, existing)
	return appendUnseen(out, seen, newKeywords)
}

// FromQuery splits a search query into distinct terms.
func FromQuery(q string) []string {
	return appendUnseen([]string{}, map[string]struct{}{}, strings.Fields(q))
}

func appendUnseen(dst []string, seen map[string]struct{}, src []string) []string {
	for _, k := range src {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		dst = append(dst, k)
	}
	return dst
}

// Summary renders keywords for the saved-articles header, e.g.
// "Nature, Yellowstone, and 2 other". Up to shown+1 keywords are listed in
// full; beyond that the first shown are listed and the rest counted.
func Summary(keywords []string, shown int) string {
	if shown < 1 {
		shown = 1
	}
	n := len(keywords)
	if n > shown+1 {
		return fmt.Sprintf("%s and %d other", listJoin(keywords[:shown], true), n-shown)
	}
	return listJoin(keywords, false)
}

// listJoin joins items as an English list. With more set the list is
// followed by another item, so two or more names end with a comma.
func listJoin(items []string, more bool) string {
	switch {
	case len(items) == 0:
		return ""
	case more && len(items) == 1:
		return items[0]
	case more:
		return strings.Join(items, ", ") + ","
	case len(items) == 1:
		return items[0]
	case len(items) == 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
