// Package web serves the demo form page and its JSON equivalents.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
)

//go:embed templates/*.html
var templateFS embed.FS

// HeaderRequestID carries the per-request id on requests and responses.
const HeaderRequestID = "X-Request-ID"

const localRequestID = "request_id"

// Config holds the listen address and the form defaults.
type Config struct {
	ListenAddr string
	Qubits     int
	SwapPolicy qft.SwapPolicy
	A          float64
	B          float64
}

// Server is the web front end of both demos.
type Server struct {
	config   Config
	qft      qft.Runner
	detector *errdetect.Runner
	logger   *slog.Logger
	page     *template.Template
	app      *fiber.App
}

// NewServer creates the server and registers its routes. The runners are
// injected so tests can pin the simulator and fault draws.
func NewServer(config Config, qftRunner qft.Runner, detector *errdetect.Runner, logger *slog.Logger) (*Server, error) {
	page, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		qft:      qftRunner,
		detector: detector,
		logger:   logger,
		page:     page,
		app:      app,
	}

	app.Use(s.requestID)

	app.Get("/", s.handleIndex)
	app.Post("/qft", s.handleQFTForm)
	app.Post("/errdetect", s.handleErrDetectForm)

	app.Post("/api/qft", s.handleQFTAPI)
	app.Post("/api/errdetect", s.handleErrDetectAPI)
	app.Get("/ping", s.handlePing)

	return s, nil
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting web server", "listen", s.config.ListenAddr)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requestID tags every request with an id and logs it once it completes.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(localRequestID, id)
	c.Set(HeaderRequestID, id)

	start := time.Now()
	err := c.Next()

	s.logger.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"request_id", id,
	)
	return err
}

func requestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}
