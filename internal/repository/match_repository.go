// Package repository contains data access logic for the match catalog.
// The catalog is a fixed, in-process list; there is no database behind it.
package repository

import (
	"errors"
	"strings"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
)

// ErrMatchNotFound indicates that no match exists for the given ID.
var ErrMatchNotFound = errors.New("match not found")

// CategoryAll disables category filtering.
const CategoryAll = "all"

// MatchRepo serves the static match catalog.  It is safe for concurrent
// use because the list is never mutated after construction.
type MatchRepo struct {
	matches []model.Match
}

// NewMatchRepo returns a MatchRepo over the given matches.  A nil slice
// selects the built-in catalog.
func NewMatchRepo(matches []model.Match) *MatchRepo {
	if matches == nil {
		matches = DefaultMatches()
	}
	cp := make([]model.Match, len(matches))
	copy(cp, matches)
	return &MatchRepo{matches: cp}
}

// GetByID looks a match up by its catalog ID.
func (r *MatchRepo) GetByID(id string) (model.Match, error) {
	for _, m := range r.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Match{}, ErrMatchNotFound
}

// Filter returns the matches whose title, venue or city contains query
// (case-insensitive, spaces included) and whose category equals category.  An empty query
// matches everything; "all" or an empty category disables the category
// check.  The result is never nil so callers can render an empty state.
func (r *MatchRepo) Filter(query, category string) []model.Match {
	q := strings.ToLower(query)
	cat := normalizeCategory(category)
	out := make([]model.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if cat != CategoryAll && string(m.Category) != cat {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Title), q) &&
			!strings.Contains(strings.ToLower(m.Venue), q) &&
			!strings.Contains(strings.ToLower(m.City), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Categories lists the filter values accepted by Filter, "all" first.
func (r *MatchRepo) Categories() []string {
	return []string{
		CategoryAll,
		string(model.CategoryInternational),
		string(model.CategoryLeague),
		string(model.CategoryDomestic),
	}
}

// normalizeCategory lower-cases the filter and maps "ipl" onto league.
func normalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	switch c {
	case "":
		return CategoryAll
	case "ipl":
		return string(model.CategoryLeague)
	}
	return c
}
