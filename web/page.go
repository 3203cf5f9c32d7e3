package web

import (
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

const (
	tabQFT       = "qft"
	tabErrDetect = "errdetect"
)

// pageData fills templates/index.html.
type pageData struct {
	Tab          string
	QubitOptions []int
	Qubits       int
	State        string
	Policy       string
	A            float64
	B            float64
	Error        string
	QFT          *QFTResponse
	Detect       *ErrDetectResponse
}

var templateFuncs = template.FuncMap{
	"percent": func(p float64) string {
		return fmt.Sprintf("%.1f%%", 100*p)
	},
	"signed": func(x float64) string {
		return fmt.Sprintf("%+.3f", x)
	},
}

func (s *Server) defaults() pageData {
	opts := make([]int, 0, qft.MaxQubits-qft.MinQubits+1)
	for n := qft.MinQubits; n <= qft.MaxQubits; n++ {
		opts = append(opts, n)
	}
	return pageData{
		Tab:          tabQFT,
		QubitOptions: opts,
		Qubits:       s.config.Qubits,
		State:        statevec.Default(s.config.Qubits),
		Policy:       s.config.SwapPolicy.String(),
		A:            s.config.A,
		B:            s.config.B,
	}
}

func (s *Server) render(c *fiber.Ctx, status int, data pageData) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return s.page.Execute(c, data)
}

// handleIndex serves the empty form. ?qubits=N preselects N and its default
// state; ?tab=errdetect opens the second demo.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	data := s.defaults()
	if n := c.QueryInt("qubits", data.Qubits); qft.ValidQubits(n) {
		data.Qubits = n
		data.State = statevec.Default(n)
	}
	if c.Query("tab") == tabErrDetect {
		data.Tab = tabErrDetect
	}
	return s.render(c, fiber.StatusOK, data)
}

func (s *Server) handleQFTForm(c *fiber.Ctx) error {
	data := s.defaults()
	data.Tab = tabQFT

	var req QFTRequest
	if err := c.BodyParser(&req); err != nil {
		data.Error = "invalid form: " + err.Error()
		return s.render(c, fiber.StatusBadRequest, data)
	}
	data.Qubits, data.State = req.Qubits, req.State
	if req.Policy != "" {
		data.Policy = req.Policy
	}

	resp, err := s.runQFT(c, req)
	if err != nil {
		status, kind := classify(err)
		s.logRejected(c, kind, err)
		data.Error = publicMessage(kind, err)
		return s.render(c, status, data)
	}

	data.QFT = resp
	return s.render(c, fiber.StatusOK, data)
}

func (s *Server) handleErrDetectForm(c *fiber.Ctx) error {
	data := s.defaults()
	data.Tab = tabErrDetect

	var req ErrDetectRequest
	if err := c.BodyParser(&req); err != nil {
		data.Error = "invalid form: " + err.Error()
		return s.render(c, fiber.StatusBadRequest, data)
	}
	data.A, data.B = req.A, req.B

	resp, err := s.runErrDetect(c, req)
	if err != nil {
		status, kind := classify(err)
		s.logRejected(c, kind, err)
		data.Error = publicMessage(kind, err)
		return s.render(c, status, data)
	}

	data.Detect = resp
	return s.render(c, fiber.StatusOK, data)
}
