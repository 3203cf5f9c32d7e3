package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"qdemos/pkg/circuit"
	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

// QFTRequest is the QFT form, as form fields or JSON.
type QFTRequest struct {
	Qubits int    `json:"qubits" form:"qubits"`
	State  string `json:"state" form:"state"`
	Policy string `json:"policy,omitempty" form:"policy"`
}

// ErrDetectRequest is the error-detection form. Fault forces a branch
// instead of drawing one; leave it empty for a random fault.
type ErrDetectRequest struct {
	A     float64 `json:"a" form:"a"`
	B     float64 `json:"b" form:"b"`
	Fault string  `json:"fault,omitempty" form:"fault"`
}

// Amplitude is one rounded entry of the final state vector.
type Amplitude struct {
	Ket string  `json:"ket"`
	Re  float64 `json:"re"`
	Im  float64 `json:"im"`
}

// QFTResponse is the QFT demo output.
type QFTResponse struct {
	Qubits        int                         `json:"qubits"`
	Policy        string                      `json:"policy"`
	Gates         int                         `json:"gates"`
	Depth         int                         `json:"depth"`
	Diagram       string                      `json:"diagram"`
	QASM          string                      `json:"qasm"`
	State         string                      `json:"state"`
	Amplitudes    []Amplitude                 `json:"amplitudes"`
	Probabilities []statevec.QubitProbability `json:"probabilities"`
}

// ErrDetectResponse is the error-detection demo output.
type ErrDetectResponse struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Diagram   string  `json:"diagram"`
	QASM      string  `json:"qasm"`
	Fault     string  `json:"fault"`
	M1        int     `json:"m1"`
	M2        int     `json:"m2"`
	Diagnosis string  `json:"diagnosis"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

func (s *Server) handleQFTAPI(c *fiber.Ctx) error {
	var req QFTRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body", Kind: KindRequest})
	}

	resp, err := s.runQFT(c, req)
	if err != nil {
		return s.errorJSON(c, err)
	}
	return c.JSON(resp)
}

func (s *Server) handleErrDetectAPI(c *fiber.Ctx) error {
	var req ErrDetectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body", Kind: KindRequest})
	}

	resp, err := s.runErrDetect(c, req)
	if err != nil {
		return s.errorJSON(c, err)
	}
	return c.JSON(resp)
}

func (s *Server) runQFT(c *fiber.Ctx, req QFTRequest) (*QFTResponse, error) {
	policy := s.config.SwapPolicy
	if req.Policy != "" {
		p, err := qft.ParseSwapPolicy(req.Policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	runner := s.qft
	runner.Policy = policy

	start := time.Now()
	res, err := runner.Run(req.Qubits, req.State)
	if err != nil {
		return nil, err
	}

	s.logger.Info("qft simulated",
		"qubits", req.Qubits,
		"policy", policy.String(),
		"gates", res.Circuit.Len(),
		"duration", time.Since(start),
		"request_id", requestIDFrom(c),
	)

	amps := make([]Amplitude, len(res.Rounded.Amplitudes))
	for i, a := range res.Rounded.Amplitudes {
		amps[i] = Amplitude{Ket: res.Rounded.Ket(i), Re: real(a), Im: imag(a)}
	}

	return &QFTResponse{
		Qubits:        req.Qubits,
		Policy:        policy.String(),
		Gates:         res.Circuit.Len(),
		Depth:         circuit.Depth(res.Circuit),
		Diagram:       res.Diagram,
		QASM:          res.QASM,
		State:         res.Rounded.Format(qft.Decimals),
		Amplitudes:    amps,
		Probabilities: res.QubitProbabilities,
	}, nil
}

func (s *Server) runErrDetect(c *fiber.Ctx, req ErrDetectRequest) (*ErrDetectResponse, error) {
	start := time.Now()

	var (
		res *errdetect.Result
		err error
	)
	if req.Fault != "" {
		f, perr := errdetect.ParseFault(req.Fault)
		if perr != nil {
			return nil, perr
		}
		res, err = s.detector.RunWithFault(req.A, req.B, f)
	} else {
		res, err = s.detector.Run(req.A, req.B)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("error detection simulated",
		"a", req.A,
		"b", req.B,
		"fault", res.Fault.String(),
		"syndrome", res.Syndrome.String(),
		"duration", time.Since(start),
		"request_id", requestIDFrom(c),
	)

	return &ErrDetectResponse{
		A:         req.A,
		B:         req.B,
		Diagram:   res.Diagram,
		QASM:      res.QASM,
		Fault:     res.Fault.String(),
		M1:        res.Syndrome.M1,
		M2:        res.Syndrome.M2,
		Diagnosis: res.Syndrome.Diagnose().String(),
	}, nil
}
