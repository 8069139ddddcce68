package locator

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/PaceTNT/office-map/internal/auth"
	"github.com/PaceTNT/office-map/internal/models"
	"github.com/PaceTNT/office-map/internal/store"
	"github.com/PaceTNT/office-map/internal/validate"
)

// EmployeeView renders an employee entity with nested locations.
type EmployeeView struct {
	*models.Employee
}

func (v *EmployeeView) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) apiEmployeeIdCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "employeeid")
		if key == "" {
			render.Render(w, r, s.httpErrInvalidRequest(store.NotFoundError{Resource: "employee"}))
			return
		}

		ctx := context.WithValue(r.Context(), ctxEmployeeId, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) apiEmployeeRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.apiEmployeeGetAll)
	r.With(auth.RequireAdmin).Post("/", s.apiEmployeeCreate)

	r.Route("/{employeeid}", func(r chi.Router) {
		r.Use(s.apiEmployeeIdCtx)
		r.Get("/", s.apiEmployeeGet)
		r.With(auth.RequireAdmin).Put("/", s.apiEmployeeUpdate)
		r.With(auth.RequireAdmin).Delete("/", s.apiEmployeeDelete)
	})

	return r
}

func (s *Server) apiEmployeeGetAll(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	outs := []render.Renderer{}
	for i := range employees {
		outs = append(outs, &EmployeeView{Employee: &employees[i]})
	}

	render.RenderList(w, r, outs)
}

func (s *Server) apiEmployeeGet(w http.ResponseWriter, r *http.Request) {
	employeeId := getCtxValueString(r.Context(), ctxEmployeeId)

	e, err := s.store.GetEmployee(r.Context(), employeeId)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &EmployeeView{Employee: e})
}

// resolvePicture prefers an uploaded picture file over a caller-supplied
// URL; returns "" when neither was provided.
func (s *Server) resolvePicture(r *http.Request) (string, error) {
	file, header, err := r.FormFile("picture")
	if err == http.ErrMissingFile {
		return r.FormValue("pictureUrl"), nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return s.images.Save(r.Context(), header.Filename, header.Size, file)
}

func (s *Server) apiEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	name := r.FormValue("name")
	phone := r.FormValue("phone")
	email := r.FormValue("email")

	if err := validate.EmployeeCreate(name, phone, email); err != nil {
		s.renderError(w, r, err)
		return
	}

	taken, err := s.store.EmailTaken(r.Context(), email, "")
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if taken {
		s.renderError(w, r, validate.DuplicateEmailError{Email: email})
		return
	}

	pictureUrl, err := s.resolvePicture(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	e := &models.Employee{
		Name:       name,
		Phone:      phone,
		Email:      email,
		PictureUrl: pictureUrl,
	}

	if err := s.store.CreateEmployee(r.Context(), e); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, &EmployeeView{Employee: e})
}

func (s *Server) apiEmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	employeeId := getCtxValueString(r.Context(), ctxEmployeeId)

	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	patch := store.EmployeePatch{}
	form := r.MultipartForm.Value
	if v, ok := formValue(form, "name"); ok {
		patch.Name = &v
	}
	if v, ok := formValue(form, "phone"); ok {
		patch.Phone = &v
	}
	if v, ok := formValue(form, "email"); ok {
		patch.Email = &v
	}
	if v, ok := formValue(form, "pictureUrl"); ok {
		patch.PictureUrl = &v
	}

	// uploaded picture wins over a pictureUrl field
	file, header, err := r.FormFile("picture")
	if err == nil {
		defer file.Close()

		pictureUrl, saveErr := s.images.Save(r.Context(), header.Filename, header.Size, file)
		if saveErr != nil {
			s.renderError(w, r, saveErr)
			return
		}
		patch.PictureUrl = &pictureUrl
	} else if err != http.ErrMissingFile {
		render.Render(w, r, s.httpErrInvalidRequest(err))
		return
	}

	if patch.Email != nil {
		taken, err := s.store.EmailTaken(r.Context(), *patch.Email, employeeId)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		if taken {
			s.renderError(w, r, validate.DuplicateEmailError{Email: *patch.Email})
			return
		}
	}

	e, err := s.store.UpdateEmployee(r.Context(), employeeId, patch)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &EmployeeView{Employee: e})
}

func (s *Server) apiEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	employeeId := getCtxValueString(r.Context(), ctxEmployeeId)

	if err := s.store.DeleteEmployee(r.Context(), employeeId); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Render(w, r, &MsgResponse{Message: "employee deleted successfully"})
}
