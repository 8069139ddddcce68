package locator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PaceTNT/office-map/internal/auth"
	"github.com/PaceTNT/office-map/internal/imagestore"
	"github.com/PaceTNT/office-map/internal/models"
	"github.com/PaceTNT/office-map/internal/store"
)

type Server struct {
	cfg      Config
	log      *logrus.Logger
	dbConn   *gorm.DB
	store    *store.Store
	images   imagestore.Store
	verifier *auth.Verifier
}

/* Main */
func getDbConn(cfg Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch cfg.Db.Driver {
	case "mysql":
		if cfg.Db.Mysql.User == "" || cfg.Db.Mysql.Host == "" || cfg.Db.Mysql.Database == "" {
			return nil, fmt.Errorf("missing connection info")
		}

		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Db.Mysql.User, cfg.Db.Mysql.Password, cfg.Db.Mysql.Host, cfg.Db.Mysql.Database)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}

	case "postgres":
		if cfg.Db.Postgres.Dsn == "" {
			return nil, fmt.Errorf("missing connection info")
		}

		db, err = gorm.Open(postgres.Open(cfg.Db.Postgres.Dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown db driver %s", cfg.Db.Driver)
	}

	if cfg.Db.Debug {
		db.Logger = db.Logger.LogMode(logger.Info)
	}

	return db, err
}

func New(cfg Config, log *logrus.Logger) (*Server, error) {
	db, err := getDbConn(cfg)
	if err != nil {
		return nil, err
	}

	images, err := imagestore.New(context.Background(), imagestore.Driver(cfg.Upload.Driver), imagestore.Config{
		MaxBytes:     cfg.Upload.MaxBytes,
		Dir:          cfg.Upload.Dir,
		PublicPrefix: cfg.Upload.PublicPrefix,
		S3: imagestore.S3Config{
			Bucket:    cfg.Upload.S3.Bucket,
			Region:    cfg.Upload.S3.Region,
			Endpoint:  cfg.Upload.S3.Endpoint,
			AccessKey: cfg.Upload.S3.AccessKey,
			SecretKey: cfg.Upload.S3.SecretKey,
			BaseURL:   cfg.Upload.S3.BaseURL,
		},
	})
	if err != nil {
		return nil, err
	}

	return NewWithBackends(cfg, log, db, images)
}

// NewWithBackends wires a server onto an existing database connection and
// image store. Used by New and by tests.
func NewWithBackends(cfg Config, log *logrus.Logger, db *gorm.DB, images imagestore.Store) (*Server, error) {
	if !cfg.Auth.Disabled && cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret is required unless auth is disabled")
	}

	err := db.AutoMigrate(&models.Map{}, &models.Employee{}, &models.Location{})
	if err != nil {
		log.WithError(err).Error("failed to automigrate database")
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		dbConn:   db,
		store:    store.New(db),
		images:   images,
		verifier: auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Disabled),
	}

	return s, nil
}

// Router assembles the full HTTP surface.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.apiHealth)

	// uploaded images are served directly off disk for the fs driver;
	// the s3 driver hands out absolute object URLs instead
	if s.images.Driver() == imagestore.DriverFilesystem {
		prefix := s.cfg.Upload.PublicPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		prefix = strings.TrimSuffix(prefix, "/")

		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(s.cfg.Upload.Dir)))
		r.Get(prefix+"/*", fileServer.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/status", s.apiAuthStatus)

		r.Group(func(r chi.Router) {
			r.Use(s.verifier.Authenticate)

			r.Route("/maps", func(r chi.Router) {
				r.Mount("/", s.apiMapRouter())
			})

			r.Route("/employees", func(r chi.Router) {
				r.Mount("/", s.apiEmployeeRouter())
			})

			r.Route("/locations", func(r chi.Router) {
				r.Mount("/", s.apiLocationRouter())
			})

			r.Route("/search", func(r chi.Router) {
				r.Mount("/", s.apiSearchRouter())
			})
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			render.Render(w, r, &HttpErrResponse{
				HTTPStatusCode: http.StatusNotFound,
				ErrorText:      "route not found",
			})
		})
	})

	return r
}

func (s *Server) Run() error {
	s.log.WithFields(logrus.Fields{
		"listen":        s.cfg.Http.Listen,
		"auth_disabled": s.cfg.Auth.Disabled,
	}).Info("starting locator server")

	return http.ListenAndServe(s.cfg.Http.Listen, s.Router())
}

// HealthResponse is the payload of the unauthenticated health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *HealthResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) apiHealth(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, &HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AuthStatusResponse reports whether the credential check is active.
type AuthStatusResponse struct {
	AuthEnabled bool   `json:"authEnabled"`
	Mode        string `json:"mode"`
}

func (a *AuthStatusResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) apiAuthStatus(w http.ResponseWriter, r *http.Request) {
	mode := "production"
	if s.verifier.Disabled() {
		mode = "development"
	}

	render.Render(w, r, &AuthStatusResponse{
		AuthEnabled: !s.verifier.Disabled(),
		Mode:        mode,
	})
}
