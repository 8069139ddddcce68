package locator

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/PaceTNT/office-map/internal/auth"
	"github.com/PaceTNT/office-map/internal/models"
	"github.com/PaceTNT/office-map/internal/store"
	"github.com/PaceTNT/office-map/internal/validate"
)

// LocationView renders a location pin with its map and employee.
type LocationView struct {
	*models.Location
}

func (v *LocationView) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type locationCreateRequest struct {
	MapId      string   `json:"mapId"`
	EmployeeId string   `json:"employeeId"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
}

type locationUpdateRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (s *Server) apiLocationIdCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "locationid")
		if key == "" {
			render.Render(w, r, s.httpErrInvalidRequest(store.NotFoundError{Resource: "location"}))
			return
		}

		ctx := context.WithValue(r.Context(), ctxLocationId, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) apiLocationRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.apiLocationGetAll)
	r.With(auth.RequireAdmin).Post("/", s.apiLocationCreate)

	r.Route("/{locationid}", func(r chi.Router) {
		r.Use(s.apiLocationIdCtx)
		r.Get("/", s.apiLocationGet)
		r.With(auth.RequireAdmin).Put("/", s.apiLocationUpdate)
		r.With(auth.RequireAdmin).Delete("/", s.apiLocationDelete)
	})

	return r
}

func (s *Server) apiLocationGetAll(w http.ResponseWriter, r *http.Request) {
	locations, err := s.store.ListLocations(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	outs := []render.Renderer{}
	for i := range locations {
		outs = append(outs, &LocationView{Location: &locations[i]})
	}

	render.RenderList(w, r, outs)
}

func (s *Server) apiLocationGet(w http.ResponseWriter, r *http.Request) {
	locationId := getCtxValueString(r.Context(), ctxLocationId)

	l, err := s.store.GetLocation(r.Context(), locationId)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &LocationView{Location: l})
}

// apiLocationCreate sequences coordinate validation, then map and
// employee existence checks, then the insert. Nothing is written when
// any earlier step fails.
func (s *Server) apiLocationCreate(w http.ResponseWriter, r *http.Request) {
	req := locationCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	switch {
	case req.MapId == "":
		s.renderError(w, r, validate.MissingFieldError{Field: "mapId"})
		return
	case req.EmployeeId == "":
		s.renderError(w, r, validate.MissingFieldError{Field: "employeeId"})
		return
	case req.X == nil:
		s.renderError(w, r, validate.MissingFieldError{Field: "x"})
		return
	case req.Y == nil:
		s.renderError(w, r, validate.MissingFieldError{Field: "y"})
		return
	}

	if err := validate.Coordinates(req.X, req.Y); err != nil {
		s.renderError(w, r, err)
		return
	}

	ok, err := s.store.MapExists(r.Context(), req.MapId)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if !ok {
		s.renderError(w, r, store.NotFoundError{Resource: "map"})
		return
	}

	ok, err = s.store.EmployeeExists(r.Context(), req.EmployeeId)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if !ok {
		s.renderError(w, r, store.NotFoundError{Resource: "employee"})
		return
	}

	l, err := s.store.CreateLocation(r.Context(), &models.Location{
		MapId:      req.MapId,
		EmployeeId: req.EmployeeId,
		X:          *req.X,
		Y:          *req.Y,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &LocationView{Location: l})
}

func (s *Server) apiLocationUpdate(w http.ResponseWriter, r *http.Request) {
	locationId := getCtxValueString(r.Context(), ctxLocationId)

	req := locationUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	// existence first so a bad reference is never reported as a
	// coordinate problem
	ok, err := s.store.LocationExists(r.Context(), locationId)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if !ok {
		s.renderError(w, r, store.NotFoundError{Resource: "location"})
		return
	}

	if err := validate.Coordinates(req.X, req.Y); err != nil {
		s.renderError(w, r, err)
		return
	}

	l, err := s.store.UpdateLocation(r.Context(), locationId, store.LocationPatch{
		X: req.X,
		Y: req.Y,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &LocationView{Location: l})
}

func (s *Server) apiLocationDelete(w http.ResponseWriter, r *http.Request) {
	locationId := getCtxValueString(r.Context(), ctxLocationId)

	if err := s.store.DeleteLocation(r.Context(), locationId); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &MsgResponse{Message: "location deleted successfully"})
}
