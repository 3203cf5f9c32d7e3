package config_test

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"qdemos/pkg/config"
	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
)

func writeConfig(dir, body string) string {
	path := filepath.Join(dir, "config.toml")
	Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())
	return path
}

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("NewDefaultConfig", func() {
		It("is valid", func() {
			cfg := config.NewDefaultConfig()
			Expect(cfg.Validate()).To(Succeed())
			Expect(cfg.Server.Listen).To(Equal(":8501"))
			Expect(cfg.QFT.Qubits).To(Equal(3))
			Expect(cfg.SwapPolicy()).To(Equal(qft.SwapOnce))
		})
	})

	Describe("InitViper and Load", func() {
		It("reads values from an explicit file over defaults", func() {
			path := writeConfig(dir, `
[server]
listen = ":9000"

[qft]
qubits = 5
swap_policy = "per-iteration"

[errdetect]
seed = 42
`)
			v, err := config.InitViper(path)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.Load(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.Listen).To(Equal(":9000"))
			Expect(cfg.QFT.Qubits).To(Equal(5))
			Expect(cfg.SwapPolicy()).To(Equal(qft.SwapPerIteration))
			Expect(cfg.ErrDetect.Seed).To(Equal(uint64(42)))
			Expect(cfg.ErrDetect.A).To(Equal(0.6), "unset keys keep their defaults")
			Expect(cfg.Log.Pretty).To(BeTrue())
		})

		It("fails when an explicit file is missing", func() {
			_, err := config.InitViper(filepath.Join(dir, "nope.toml"))
			Expect(err).To(HaveOccurred())
		})

		It("lets environment variables override the file", func() {
			path := writeConfig(dir, "[qft]\nqubits = 5\n")
			os.Setenv("QDEMOS_QFT_QUBITS", "7")
			DeferCleanup(os.Unsetenv, "QDEMOS_QFT_QUBITS")

			v, err := config.InitViper(path)
			Expect(err).NotTo(HaveOccurred())
			cfg, err := config.Load(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.QFT.Qubits).To(Equal(7))
		})

		It("lets a set flag override the environment", func() {
			os.Setenv("QDEMOS_SERVER_LISTEN", ":7000")
			DeferCleanup(os.Unsetenv, "QDEMOS_SERVER_LISTEN")

			var listen string
			cmd := &cobra.Command{Use: "test"}
			config.AddStringFlag(cmd, config.Flags, config.FlagListen, &listen)
			Expect(listen).To(Equal(":8501"), "flag default comes from NewDefaultConfig")
			Expect(cmd.Flags().Set("listen", ":6000")).To(Succeed())

			v, err := config.InitViper(writeConfig(dir, ""))
			Expect(err).NotTo(HaveOccurred())
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagListen})

			cfg, err := config.Load(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.Listen).To(Equal(":6000"))
		})

		It("rejects out-of-range values", func() {
			path := writeConfig(dir, "[qft]\nqubits = 12\n")
			v, err := config.InitViper(path)
			Expect(err).NotTo(HaveOccurred())

			_, err = config.Load(v)
			Expect(err).To(MatchError(qft.ErrQubitCount))
		})

		It("rejects amplitudes outside [-1,1]", func() {
			path := writeConfig(dir, "[errdetect]\na = 1.5\n")
			v, err := config.InitViper(path)
			Expect(err).NotTo(HaveOccurred())

			_, err = config.Load(v)
			var rangeErr *errdetect.RangeError
			Expect(errors.As(err, &rangeErr)).To(BeTrue())
			Expect(rangeErr.Name).To(Equal("a"))
		})

		It("rejects an unknown swap policy", func() {
			path := writeConfig(dir, "[qft]\nswap_policy = \"twice\"\n")
			v, err := config.InitViper(path)
			Expect(err).NotTo(HaveOccurred())

			_, err = config.Load(v)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("swap_policy"))
		})
	})

	Describe("ToTOML", func() {
		It("renders sections that decode back into the same config", func() {
			cfg := config.NewDefaultConfig()
			cfg.QFT.Qubits = 4

			out, err := config.ToTOML(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("[server]"))
			Expect(out).To(ContainSubstring("swap_policy = \"once\""))

			var decoded config.Config
			_, err = toml.Decode(out, &decoded)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(*cfg))
		})

		It("refuses a nil config", func() {
			_, err := config.ToTOML(nil)
			Expect(err).To(MatchError(config.ErrNilConfig))
		})
	})
})
