package qdemoscmder_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	qdemoscmder "qdemos/cmd/qdemos"
	errdetectcmder "qdemos/cmd/qdemos/errdetect"
	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

const testConfig = `[qft]
qubits = 2

[errdetect]
a = 0.6
b = 0.8
seed = 42

[log]
pretty = false
`

var _ = Describe("qdemos command", func() {
	var configPath string

	BeforeEach(func() {
		configPath = filepath.Join(GinkgoT().TempDir(), "config.toml")
		Expect(os.WriteFile(configPath, []byte(testConfig), 0o644)).To(Succeed())
	})

	execute := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := qdemoscmder.NewQdemosCmd()
		cmd.SetOut(&out)
		cmd.SetErr(GinkgoWriter)
		cmd.SetArgs(append(args, "--config", configPath))
		err := cmd.Execute()
		return out.String(), err
	}

	It("registers every subcommand", func() {
		cmd := qdemoscmder.NewQdemosCmd()
		var names []string
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("serve", "tui", "qft", "errdetect", "config", "version"))
		Expect(cmd.PersistentFlags().Lookup("debug")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config")).NotTo(BeNil())
	})

	Describe("version", func() {
		It("prints the build info", func() {
			out, err := execute("version")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Version: dev"))
			Expect(out).To(ContainSubstring("Sha: HEAD"))
		})
	})

	Describe("qft", func() {
		It("transforms |00> into the uniform superposition", func() {
			out, err := execute("qft")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Final state:"))
			Expect(out).To(ContainSubstring("[0.500+0.000j 0.500+0.000j 0.500+0.000j 0.500+0.000j]"))
			Expect(out).To(ContainSubstring("q[1]  P(0)  50.0%  P(1)  50.0%"))
		})

		It("lets a flag override the config file", func() {
			out, err := execute("qft", "-n", "3")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("|111⟩"))
		})

		It("prints QASM only with --qasm", func() {
			out, err := execute("qft", "--qasm")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix("OPENQASM 2.0;"))
			Expect(out).To(ContainSubstring("cu1(pi/2) q[1], q[0];"))
			Expect(out).To(ContainSubstring("swap q[0], q[1];"))
		})

		It("rejects a state of the wrong length", func() {
			_, err := execute("qft", "--state", "1,0")
			var lenErr *statevec.LengthMismatchError
			Expect(errors.As(err, &lenErr)).To(BeTrue())
		})

		It("rejects an unnormalized state", func() {
			_, err := execute("qft", "--state", "1,1,0,0")
			var normErr *statevec.NormalizationError
			Expect(errors.As(err, &normErr)).To(BeTrue())
		})

		It("rejects an out-of-range qubit count", func() {
			_, err := execute("qft", "-n", "11")
			Expect(errors.Is(err, qft.ErrQubitCount)).To(BeTrue())
		})

		It("rejects an unknown swap policy", func() {
			_, err := execute("qft", "--swap-policy", "sometimes")
			Expect(errors.Is(err, qft.ErrSwapPolicy)).To(BeTrue())
		})
	})

	Describe("errdetect", func() {
		decode := func(out string) errdetectcmder.Output {
			var o errdetectcmder.Output
			Expect(json.Unmarshal([]byte(out), &o)).To(Succeed())
			return o
		}

		DescribeTable("locates a forced fault",
			func(fault string, m1, m2 int, diagnosis string) {
				out, err := execute("errdetect", "--fault", fault, "--json")
				Expect(err).NotTo(HaveOccurred())

				o := decode(out)
				Expect(o.M1).To(Equal(m1))
				Expect(o.M2).To(Equal(m2))
				Expect(o.Diagnosis).To(Equal(diagnosis))
				Expect(o.Fault).To(Equal(diagnosis))
			},
			Entry("none", "none", 0, 0, "No Error"),
			Entry("q0", "q0", 1, 1, "Bit-flip on qubit 0"),
			Entry("q1", "q1", 1, 0, "Bit-flip on qubit 1"),
			Entry("q2", "q2", 0, 1, "Bit-flip on qubit 2"),
		)

		It("repeats the drawn fault for the same seed", func() {
			first, err := execute("errdetect", "--json")
			Expect(err).NotTo(HaveOccurred())
			second, err := execute("errdetect", "--json")
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(second))

			o := decode(first)
			Expect(o.Diagnosis).To(Equal(o.Fault))
		})

		It("prints the diagram and syndrome", func() {
			out, err := execute("errdetect", "--fault", "q1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("M:m1"))
			Expect(out).To(ContainSubstring("Injected error: Bit-flip on qubit 1"))
			Expect(out).To(ContainSubstring("m1 = 1, m2 = 0"))
		})

		It("rejects amplitudes outside [-1, 1]", func() {
			_, err := execute("errdetect", "--a", "1.5")
			var rangeErr *errdetect.RangeError
			Expect(errors.As(err, &rangeErr)).To(BeTrue())
			Expect(rangeErr.Name).To(Equal("a"))
		})

		It("rejects an unknown fault", func() {
			_, err := execute("errdetect", "--fault", "q7")
			Expect(errors.Is(err, errdetect.ErrFault)).To(BeTrue())
		})
	})

	Describe("config show", func() {
		It("prints the effective config as TOML", func() {
			out, err := execute("config", "show")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("# from " + configPath))
			Expect(out).To(ContainSubstring("qubits = 2"))
			Expect(out).To(ContainSubstring("seed = 42"))
			Expect(out).To(ContainSubstring(`listen = ":8501"`))
		})

		It("applies environment overrides", func() {
			os.Setenv("QDEMOS_QFT_QUBITS", "5")
			DeferCleanup(os.Unsetenv, "QDEMOS_QFT_QUBITS")
			out, err := execute("config", "show")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("qubits = 5"))
		})

		It("fails on a missing explicit config file", func() {
			configPath = filepath.Join(GinkgoT().TempDir(), "missing.toml")
			_, err := execute("config", "show")
			Expect(err).To(HaveOccurred())
		})
	})
})
