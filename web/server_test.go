package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"qdemos/pkg/errdetect"
	"qdemos/pkg/logger"
	"qdemos/pkg/qft"
	"qdemos/pkg/simulator"
)

func newTestServer() *Server {
	sim := simulator.NewStateVector(simulator.WithSeed(1))
	server, err := NewServer(
		Config{ListenAddr: ":0", Qubits: 3, SwapPolicy: qft.SwapOnce, A: 0.6, B: 0.8},
		qft.Runner{Sim: sim},
		errdetect.NewRunner(sim, rand.New(rand.NewPCG(1, 2))),
		logger.Nop(),
	)
	Expect(err).NotTo(HaveOccurred())
	return server
}

func postJSON(s *Server, path string, body any) *http.Response {
	raw, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	Expect(err).NotTo(HaveOccurred())
	return resp
}

func postForm(s *Server, path string, form url.Values) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.app.Test(req)
	Expect(err).NotTo(HaveOccurred())
	body, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return resp, string(body)
}

func decode[T any](resp *http.Response) T {
	var out T
	body, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(json.Unmarshal(body, &out)).To(Succeed(), string(body))
	return out
}

var _ = Describe("Server", func() {
	var server *Server

	BeforeEach(func() {
		server = newTestServer()
	})

	Describe("GET /ping", func() {
		It("returns pong with a request id", func() {
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			Expect(resp.Header.Get(HeaderRequestID)).NotTo(BeEmpty())
			Expect(decode[string](resp)).To(Equal("pong"))
		})

		It("echoes a caller supplied request id", func() {
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(HeaderRequestID, "abc-123")
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Header.Get(HeaderRequestID)).To(Equal("abc-123"))
		})
	})

	Describe("GET /", func() {
		It("renders the form with the default state", func() {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			body, _ := io.ReadAll(resp.Body)
			Expect(string(body)).To(ContainSubstring(`action="/qft"`))
			Expect(string(body)).To(ContainSubstring("1,0,0,0,0,0,0,0"))
		})

		It("preselects the qubit count from the query", func() {
			req, _ := http.NewRequest(http.MethodGet, "/?qubits=2", nil)
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())

			body, _ := io.ReadAll(resp.Body)
			Expect(string(body)).To(ContainSubstring(`<option value="2" selected>`))
			Expect(string(body)).To(ContainSubstring(">1,0,0,0</textarea>"))
		})
	})

	Describe("POST /api/qft", func() {
		It("returns the uniform superposition for |000>", func() {
			resp := postJSON(server, "/api/qft", QFTRequest{Qubits: 3, State: "1,0,0,0,0,0,0,0"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			out := decode[QFTResponse](resp)
			Expect(out.Amplitudes).To(HaveLen(8))
			for _, a := range out.Amplitudes {
				Expect(a.Re).To(BeNumerically("~", 0.354, 1e-9))
				Expect(a.Im).To(BeNumerically("~", 0, 1e-9))
			}
			Expect(out.Probabilities).To(HaveLen(3))
			Expect(out.Probabilities[0].Prob1).To(BeNumerically("~", 0.5, 1e-9))
			Expect(out.Diagram).To(ContainSubstring("┤H├"))
			Expect(out.QASM).To(ContainSubstring("qreg q[3];"))
			Expect(out.Policy).To(Equal("once"))
		})

		It("applies a requested swap policy", func() {
			resp := postJSON(server, "/api/qft", QFTRequest{Qubits: 4, Policy: "per-iteration"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			out := decode[QFTResponse](resp)
			Expect(out.Policy).To(Equal("per-iteration"))
			Expect(out.Gates).To(Equal(4 + 6 + 8))
		})

		DescribeTable("rejects bad input with 422 and an error kind",
			func(req QFTRequest, kind string) {
				resp := postJSON(server, "/api/qft", req)
				Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
				out := decode[ErrorResponse](resp)
				Expect(out.Kind).To(Equal(kind))
				Expect(out.Error).NotTo(BeEmpty())
			},
			Entry("not normalized", QFTRequest{Qubits: 2, State: "1,1,0,0"}, KindNormalization),
			Entry("wrong length", QFTRequest{Qubits: 2, State: "1,0,0"}, KindLength),
			Entry("bad literal", QFTRequest{Qubits: 2, State: "1,abc,0,0"}, KindParse),
			Entry("too many qubits", QFTRequest{Qubits: 11}, KindQubits),
			Entry("unknown policy", QFTRequest{Qubits: 2, Policy: "twice"}, KindPolicy),
		)

		It("names the required length", func() {
			resp := postJSON(server, "/api/qft", QFTRequest{Qubits: 2, State: "1,0,0"})
			out := decode[ErrorResponse](resp)
			Expect(out.Error).To(ContainSubstring("4"))
		})

		It("rejects a malformed body with 400", func() {
			req, _ := http.NewRequest(http.MethodPost, "/api/qft", strings.NewReader("{"))
			req.Header.Set("Content-Type", "application/json")
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})
	})

	Describe("POST /api/errdetect", func() {
		It("leaves a zero syndrome for a=1, b=0 and no error", func() {
			resp := postJSON(server, "/api/errdetect", ErrDetectRequest{A: 1, B: 0, Fault: "none"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			out := decode[ErrDetectResponse](resp)
			Expect(out.Fault).To(Equal("No Error"))
			Expect(out.M1).To(Equal(0))
			Expect(out.M2).To(Equal(0))
			Expect(out.Diagram).To(ContainSubstring("M:m1"))
		})

		It("reports a syndrome consistent with the drawn fault", func() {
			for range 10 {
				resp := postJSON(server, "/api/errdetect", ErrDetectRequest{A: 0.6, B: -0.8})
				Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
				out := decode[ErrDetectResponse](resp)
				Expect(out.Diagnosis).To(Equal(out.Fault))
			}
		})

		It("rejects amplitudes outside [-1,1]", func() {
			resp := postJSON(server, "/api/errdetect", ErrDetectRequest{A: 2, B: 0})
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
			Expect(decode[ErrorResponse](resp).Kind).To(Equal(KindRange))
		})

		It("rejects an unknown fault", func() {
			resp := postJSON(server, "/api/errdetect", ErrDetectRequest{A: 1, Fault: "q9"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
			Expect(decode[ErrorResponse](resp).Kind).To(Equal(KindFault))
		})
	})

	Describe("form posts", func() {
		It("renders QFT results", func() {
			resp, body := postForm(server, "/qft", url.Values{"qubits": {"2"}, "state": {"0,1,0,0"}})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			Expect(body).To(ContainSubstring(`id="state-vector"`))
			Expect(body).To(ContainSubstring("0.500+0.000j"))
		})

		It("re-renders the form with the error for invalid state", func() {
			resp, body := postForm(server, "/qft", url.Values{"qubits": {"2"}, "state": {"1,1,0,0"}})
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
			Expect(body).To(ContainSubstring(`id="error"`))
			Expect(body).To(ContainSubstring(">1,1,0,0</textarea>"), "the user's input is kept")
			Expect(body).NotTo(ContainSubstring(`id="state-vector"`))
		})

		It("escapes user input", func() {
			_, body := postForm(server, "/qft", url.Values{"qubits": {"2"}, "state": {"<script>"}})
			Expect(body).NotTo(ContainSubstring("<script>"))
		})

		It("renders error detection results", func() {
			resp, body := postForm(server, "/errdetect", url.Values{"a": {"0.6"}, "b": {"0.8"}})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			Expect(body).To(ContainSubstring(`id="fault"`))
			Expect(body).To(ContainSubstring("m1 ="))
		})
	})
})

var _ = Describe("classify", func() {
	It("treats unknown errors as internal", func() {
		status, kind := classify(io.ErrUnexpectedEOF)
		Expect(status).To(Equal(fiber.StatusInternalServerError))
		Expect(kind).To(Equal(KindInternal))
	})

	It("hides internal error text from clients", func() {
		Expect(publicMessage(KindInternal, errors.New("sampler exploded"))).To(Equal("simulation failed"))
		Expect(publicMessage(KindRange, errors.New("a out of range"))).To(Equal("a out of range"))
	})

	It("recognises range errors", func() {
		err := errdetect.Validate(math.Inf(1), 0)
		status, kind := classify(err)
		Expect(status).To(Equal(fiber.StatusUnprocessableEntity))
		Expect(kind).To(Equal(KindRange))
	})
})
