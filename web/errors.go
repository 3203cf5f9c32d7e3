package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

// Error kinds reported in ErrorResponse.Kind.
const (
	KindParse         = "parse"
	KindLength        = "length"
	KindNormalization = "normalization"
	KindRange         = "range"
	KindQubits        = "qubits"
	KindPolicy        = "policy"
	KindFault         = "fault"
	KindRequest       = "request"
	KindInternal      = "internal"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps a pipeline error to an HTTP status and an error kind.
// Anything the user can fix by editing the form is a 422.
func classify(err error) (int, string) {
	var (
		parseErr *statevec.ParseError
		lenErr   *statevec.LengthMismatchError
		normErr  *statevec.NormalizationError
		rangeErr *errdetect.RangeError
	)

	switch {
	case errors.As(err, &parseErr):
		return fiber.StatusUnprocessableEntity, KindParse
	case errors.As(err, &lenErr):
		return fiber.StatusUnprocessableEntity, KindLength
	case errors.As(err, &normErr):
		return fiber.StatusUnprocessableEntity, KindNormalization
	case errors.As(err, &rangeErr):
		return fiber.StatusUnprocessableEntity, KindRange
	case errors.Is(err, qft.ErrQubitCount):
		return fiber.StatusUnprocessableEntity, KindQubits
	case errors.Is(err, qft.ErrSwapPolicy):
		return fiber.StatusUnprocessableEntity, KindPolicy
	case errors.Is(err, errdetect.ErrFault):
		return fiber.StatusUnprocessableEntity, KindFault
	default:
		return fiber.StatusInternalServerError, KindInternal
	}
}

func (s *Server) errorJSON(c *fiber.Ctx, err error) error {
	status, kind := classify(err)
	s.logRejected(c, kind, err)

	return c.Status(status).JSON(ErrorResponse{Error: publicMessage(kind, err), Kind: kind})
}

// publicMessage is the error text shown to the client. Internal failures are
// only logged.
func publicMessage(kind string, err error) string {
	if kind == KindInternal {
		return "simulation failed"
	}
	return err.Error()
}

func (s *Server) logRejected(c *fiber.Ctx, kind string, err error) {
	if kind == KindInternal {
		s.logger.Error("simulation failed", "error", err, "request_id", requestIDFrom(c))
		return
	}
	s.logger.Info("input rejected", "kind", kind, "error", err, "request_id", requestIDFrom(c))
}
