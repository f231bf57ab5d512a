// Package handler exposes the HTTP handlers of the booking flow: catalog,
// seat selection, payment and ticket.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
)

// CatalogHandler serves the match listing.  The catalog is static so
// these handlers never fail for lack of data; an empty result is still
// a 200.
type CatalogHandler struct {
	Matches *repository.MatchRepo
}

// catalogResponse is the listing body.  Items is never null.
type catalogResponse struct {
	Items      []model.Match `json:"items"`
	Total      int           `json:"total"`
	Query      string        `json:"query"`
	Category   string        `json:"category"`
	Categories []string      `json:"categories"`
}

// ListMatches filters the catalog by ?q= (title, venue or city) and
// ?category= (all, international, league or domestic).
func (h *CatalogHandler) ListMatches(c echo.Context) error {
	q := c.QueryParam("q")
	cat := c.QueryParam("category")
	if cat == "" {
		cat = repository.CategoryAll
	}
	items := h.Matches.Filter(q, cat)
	return c.JSON(http.StatusOK, catalogResponse{
		Items:      items,
		Total:      len(items),
		Query:      q,
		Category:   cat,
		Categories: h.Matches.Categories(),
	})
}

// GetMatch returns one match by id.
func (h *CatalogHandler) GetMatch(c echo.Context) error {
	m, err := h.Matches.GetByID(c.Param("id"))
	if errors.Is(err, repository.ErrMatchNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog error"})
	}
	return c.JSON(http.StatusOK, m)
}
