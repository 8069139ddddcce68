package locator

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/PaceTNT/office-map/internal/models"
	"github.com/PaceTNT/office-map/internal/store"
)

// SearchResultView carries the matching employees and their count.
type SearchResultView struct {
	Results []models.Employee `json:"results"`
	Count   int               `json:"count"`
}

func (v *SearchResultView) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) apiSearchRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.apiSearch)

	return r
}

func (s *Server) apiSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.NewSearchFilter(
		q.Get("query"),
		q.Get("state"),
		q.Get("city"),
		q.Get("building"),
		q.Get("floor"),
	)

	employees, err := s.store.SearchEmployees(r.Context(), filter)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &SearchResultView{
		Results: employees,
		Count:   len(employees),
	})
}
