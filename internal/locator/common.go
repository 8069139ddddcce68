package locator

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/PaceTNT/office-map/internal/imagestore"
	"github.com/PaceTNT/office-map/internal/store"
	"github.com/PaceTNT/office-map/internal/validate"
)

/* Common */
type HttpErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	ErrorText      string `json:"error"`
}

func (e *HttpErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func (s *Server) httpErrInvalidRequest(err error) render.Renderer {
	return &HttpErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorText:      err.Error(),
	}
}

func (s *Server) httpErrNotFound(err error) render.Renderer {
	return &HttpErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		ErrorText:      err.Error(),
	}
}

func (s *Server) httpErrUnexpected(err error) render.Renderer {
	return &HttpErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorText:      "internal server error",
	}
}

// renderError maps domain errors to their HTTP status. Unrecognized
// errors are logged with context and reported as a generic 500.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFoundErr   store.NotFoundError
		missingField  validate.MissingFieldError
		missingImage  validate.MissingImageError
		dupEmail      validate.DuplicateEmailError
		badCoordinate validate.CoordinateRangeError
		badFileType   imagestore.UnsupportedTypeError
		tooLarge      imagestore.TooLargeError
	)

	switch {
	case errors.As(err, &notFoundErr):
		render.Render(w, r, s.httpErrNotFound(err))
	case errors.As(err, &missingField),
		errors.As(err, &missingImage),
		errors.As(err, &dupEmail),
		errors.As(err, &badCoordinate),
		errors.As(err, &badFileType),
		errors.As(err, &tooLarge):
		render.Render(w, r, s.httpErrInvalidRequest(err))
	default:
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		render.Render(w, r, s.httpErrUnexpected(err))
	}
}

// MsgResponse confirms a mutation that returns no entity body.
type MsgResponse struct {
	Message string `json:"message"`
}

func (m *MsgResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func getCtxValueString(ctx context.Context, key ctxKey) string {
	ret := ctx.Value(key)
	if ret == nil {
		return ""
	}

	return ret.(string)
}

type ctxKey int

const (
	ctxMapId ctxKey = iota
	ctxEmployeeId
	ctxLocationId
)

// formValue returns a multipart form field and whether it was supplied.
func formValue(form map[string][]string, key string) (string, bool) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}

	return vals[0], true
}
