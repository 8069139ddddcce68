package locator

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/PaceTNT/office-map/internal/auth"
	"github.com/PaceTNT/office-map/internal/imagestore"
	"github.com/PaceTNT/office-map/internal/models"
	"github.com/PaceTNT/office-map/internal/store"
	"github.com/PaceTNT/office-map/internal/validate"
)

// MapView renders a map entity, optionally with nested locations.
type MapView struct {
	*models.Map
}

func (v *MapView) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) maxUploadBytes() int64 {
	if s.cfg.Upload.MaxBytes > 0 {
		return s.cfg.Upload.MaxBytes
	}
	return imagestore.DefaultMaxBytes
}

func (s *Server) apiMapIdCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "mapid")
		if key == "" {
			render.Render(w, r, s.httpErrInvalidRequest(store.NotFoundError{Resource: "map"}))
			return
		}

		ctx := context.WithValue(r.Context(), ctxMapId, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) apiMapRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.apiMapGetAll)
	r.With(auth.RequireAdmin).Post("/", s.apiMapCreate)

	r.Route("/{mapid}", func(r chi.Router) {
		r.Use(s.apiMapIdCtx)
		r.Get("/", s.apiMapGet)
		r.With(auth.RequireAdmin).Put("/", s.apiMapUpdate)
		r.With(auth.RequireAdmin).Delete("/", s.apiMapDelete)
	})

	return r
}

func (s *Server) apiMapGetAll(w http.ResponseWriter, r *http.Request) {
	maps, err := s.store.ListMaps(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	outs := []render.Renderer{}
	for i := range maps {
		outs = append(outs, &MapView{Map: &maps[i]})
	}

	render.RenderList(w, r, outs)
}

func (s *Server) apiMapGet(w http.ResponseWriter, r *http.Request) {
	mapId := getCtxValueString(r.Context(), ctxMapId)

	m, err := s.store.GetMap(r.Context(), mapId)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &MapView{Map: m})
}

func (s *Server) apiMapCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	name := r.FormValue("name")
	state := r.FormValue("state")
	city := r.FormValue("city")
	building := r.FormValue("building")
	floor := r.FormValue("floor")

	if err := validate.MapCreate(name, state, city, building, floor); err != nil {
		s.renderError(w, r, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.renderError(w, r, validate.MissingImageError{})
		return
	}
	defer file.Close()

	imageUrl, err := s.images.Save(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	m := &models.Map{
		Name:     name,
		State:    state,
		City:     city,
		Building: building,
		Floor:    floor,
		ImageUrl: imageUrl,
	}

	if err := s.store.CreateMap(r.Context(), m); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &MapView{Map: m})
}

func (s *Server) apiMapUpdate(w http.ResponseWriter, r *http.Request) {
	mapId := getCtxValueString(r.Context(), ctxMapId)

	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	patch := store.MapPatch{}
	form := r.MultipartForm.Value
	if v, ok := formValue(form, "name"); ok {
		patch.Name = &v
	}
	if v, ok := formValue(form, "state"); ok {
		patch.State = &v
	}
	if v, ok := formValue(form, "city"); ok {
		patch.City = &v
	}
	if v, ok := formValue(form, "building"); ok {
		patch.Building = &v
	}
	if v, ok := formValue(form, "floor"); ok {
		patch.Floor = &v
	}

	// replacement image is optional; the previous file stays in place
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()

		imageUrl, saveErr := s.images.Save(r.Context(), header.Filename, header.Size, file)
		if saveErr != nil {
			s.renderError(w, r, saveErr)
			return
		}
		patch.ImageUrl = &imageUrl
	} else if err != http.ErrMissingFile {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	m, err := s.store.UpdateMap(r.Context(), mapId, patch)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &MapView{Map: m})
}

func (s *Server) apiMapDelete(w http.ResponseWriter, r *http.Request) {
	mapId := getCtxValueString(r.Context(), ctxMapId)

	if err := s.store.DeleteMap(r.Context(), mapId); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &MsgResponse{Message: "map deleted successfully"})
}
