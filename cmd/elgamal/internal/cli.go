// Package elgamalcli implements the command-line surface of this module,
// grounded on the teacher's cmd/drand-cli/cli.go: a single urfave/cli App
// with a shared --folder flag, TOML config, and subcommands each owning a
// thin Action.
package elgamalcli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"go.dedis.ch/elgamal/elgamal"
	"go.dedis.ch/elgamal/group"
	"go.dedis.ch/elgamal/httpapi"
	"go.dedis.ch/elgamal/log"
	"go.dedis.ch/elgamal/metrics"
	"go.dedis.ch/elgamal/store"
)

// output is where non-error command results are written; tests substitute
// a buffer.
var output io.Writer = os.Stdout

var (
	version   = "master"
	gitCommit = "none"
	buildDate = "unknown"
)

func banner() {
	fmt.Fprintf(os.Stderr, "elgamal %v (date %v, commit %v)\n", version, buildDate, gitCommit)
}

var folderFlag = &cli.StringFlag{
	Name:  "folder",
	Value: DefaultFolder(),
	Usage: "Folder to keep the key store in, with absolute path.",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "If set, verbosity is at the debug level",
}

var nameFlag = &cli.StringFlag{
	Name:  "name",
	Value: "default",
	Usage: "Name under which the key is stored.",
}

var limitFlag = &cli.IntFlag{
	Name:  "limit",
	Value: 100000,
	Usage: "Maximum number of steps the brute-force decoder will search.",
}

var cacheMinFlag = &cli.Int64Flag{
	Name:  "cache-min",
	Value: -1000,
	Usage: "Lower bound of the decryption PowerCache range.",
}

var cacheMaxFlag = &cli.Int64Flag{
	Name:  "cache-max",
	Value: 1000,
	Usage: "Upper bound of the decryption PowerCache range.",
}

var listenFlag = &cli.StringFlag{
	Name:  "listen",
	Value: "localhost:8888",
	Usage: "Address the HTTP API listens on.",
}

// DefaultFolder returns the default key store location under the user's
// home directory.
func DefaultFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".elgamal"
	}
	return filepath.Join(home, ".elgamal")
}

// Config is the TOML-loadable configuration this module's daemon reads at
// startup, per spec.md's ambient config-layer expansion.
type Config struct {
	Folder       string `toml:"folder"`
	Name         string `toml:"name"`
	Listen       string `toml:"listen"`
	MetricsBind  string `toml:"metrics_bind"`
	CacheMin     int64  `toml:"cache_min"`
	CacheMax     int64  `toml:"cache_max"`
}

// LoadConfig reads a Config from a TOML file at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var appCommands = []*cli.Command{
	{
		Name:  "keygen",
		Usage: "generate a fresh key pair and store it under --name",
		Flags: []cli.Flag{nameFlag},
		Action: func(c *cli.Context) error {
			return keygenCmd(c)
		},
	},
	{
		Name:  "enc",
		Usage: "encrypt an integer plaintext under the stored public key",
		Flags: []cli.Flag{nameFlag, &cli.BoolFlag{Name: "zkp", Usage: "attach a bit-proof (plaintext must be 0 or 1)"}},
		Action: func(c *cli.Context) error {
			return encCmd(c)
		},
	},
	{
		Name:  "dec",
		Usage: "decrypt a ciphertext (hex-JSON argument) with the stored private key",
		Flags: []cli.Flag{nameFlag, limitFlag, cacheMinFlag, cacheMaxFlag, &cli.BoolFlag{Name: "use-cache"}},
		Action: func(c *cli.Context) error {
			return decCmd(c)
		},
	},
	{
		Name:  "prove",
		Usage: "produce a bit ciphertext and NIZK proof",
		Flags: []cli.Flag{nameFlag},
		Action: func(c *cli.Context) error {
			return proveCmd(c)
		},
	},
	{
		Name:  "verify",
		Usage: "verify a ciphertext/proof pair (two hex-JSON arguments)",
		Flags: []cli.Flag{nameFlag},
		Action: func(c *cli.Context) error {
			return verifyCmd(c)
		},
	},
	{
		Name:  "serve",
		Usage: "serve the stored key over HTTP",
		Flags: []cli.Flag{nameFlag, listenFlag, &cli.StringFlag{Name: "config", Usage: "TOML config file overriding --name and --listen"}},
		Action: func(c *cli.Context) error {
			return serveCmd(c)
		},
	},
}

// CLI builds the elgamal command-line app.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "elgamal"
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "elgamal %v (date %v, commit %v)\n", version, buildDate, gitCommit)
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {}
	app.Version = version
	app.Usage = "lifted additively-homomorphic ElGamal encryption"
	app.Commands = appCommands
	app.Flags = []cli.Flag{verboseFlag, folderFlag}
	app.Before = func(c *cli.Context) error {
		if c.Bool(verboseFlag.Name) {
			log.DefaultLevel = log.DebugLevel
		}
		banner()
		return nil
	}
	return app
}

func openStore(c *cli.Context) (*store.Store, error) {
	folder := c.String(folderFlag.Name)
	if err := os.MkdirAll(folder, 0750); err != nil {
		return nil, err
	}
	return store.Open(log.DefaultLogger(), folder, nil)
}

func keygenCmd(c *cli.Context) error {
	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := group.NewEd25519()
	_, priv := elgamal.GenerateKey(s)

	name := c.String(nameFlag.Name)
	if err := st.SaveKey(s, name, priv); err != nil {
		return fmt.Errorf("saving key %q: %w", name, err)
	}
	fmt.Fprintf(output, "generated key %q in %s\n", name, c.String(folderFlag.Name))
	return nil
}

func encCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: elgamal enc [--zkp] <plaintext>")
	}
	var m int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &m); err != nil {
		return fmt.Errorf("invalid plaintext %q: %w", c.Args().First(), err)
	}

	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := group.NewEd25519()
	priv, err := st.LoadKey(s, c.String(nameFlag.Name))
	if err != nil {
		return fmt.Errorf("loading key %q: %w", c.String(nameFlag.Name), err)
	}
	pub := priv.PublicKey()

	if c.Bool("zkp") {
		ct, zkp, err := pub.EncWithZkp(s, int(m))
		if err != nil {
			return err
		}
		cb, err := ct.Marshal(s, elgamal.ModeHex)
		if err != nil {
			return err
		}
		zb, err := zkp.Marshal(s, elgamal.ModeHex)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "{\"ciphertext\":%s,\"proof\":%s}\n", cb, zb)
		return nil
	}

	ct := pub.Enc(s, m)
	b, err := ct.Marshal(s, elgamal.ModeHex)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, string(b))
	return nil
}

func decCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: elgamal dec <hex-json-ciphertext>")
	}

	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := group.NewEd25519()
	priv, err := st.LoadKey(s, c.String(nameFlag.Name))
	if err != nil {
		return fmt.Errorf("loading key %q: %w", c.String(nameFlag.Name), err)
	}

	var ct elgamal.CipherText
	if err := ct.Unmarshal(s, []byte(c.Args().First()), elgamal.ModeHex); err != nil {
		return err
	}

	if c.Bool("use-cache") {
		if err := priv.SetCache(s, c.Int64(cacheMinFlag.Name), c.Int64(cacheMaxFlag.Name)); err != nil {
			return err
		}
		m, err := priv.DecCache(s, &ct)
		if err != nil {
			return err
		}
		fmt.Fprintln(output, m)
		return nil
	}

	m, err := priv.Dec(s, &ct, c.Int(limitFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintln(output, m)
	return nil
}

func proveCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: elgamal prove <0|1>")
	}
	var bit int
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &bit); err != nil {
		return err
	}

	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := group.NewEd25519()
	priv, err := st.LoadKey(s, c.String(nameFlag.Name))
	if err != nil {
		return err
	}

	ct, zkp, err := priv.PublicKey().EncWithZkp(s, bit)
	if err != nil {
		return err
	}
	cb, err := ct.Marshal(s, elgamal.ModeHex)
	if err != nil {
		return err
	}
	zb, err := zkp.Marshal(s, elgamal.ModeHex)
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "{\"ciphertext\":%s,\"proof\":%s}\n", cb, zb)
	return nil
}

func verifyCmd(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: elgamal verify <hex-json-ciphertext> <hex-json-proof>")
	}

	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := group.NewEd25519()
	priv, err := st.LoadKey(s, c.String(nameFlag.Name))
	if err != nil {
		return err
	}

	var ct elgamal.CipherText
	if err := ct.Unmarshal(s, []byte(c.Args().Get(0)), elgamal.ModeHex); err != nil {
		return err
	}
	var zkp elgamal.Zkp
	if err := zkp.Unmarshal(s, []byte(c.Args().Get(1)), elgamal.ModeHex); err != nil {
		return err
	}

	ok := priv.PublicKey().Verify(s, &ct, &zkp)
	fmt.Fprintln(output, ok)
	return nil
}

func serveCmd(c *cli.Context) error {
	name := c.String(nameFlag.Name)
	listen := c.String(listenFlag.Name)

	var cfg *Config
	if cfgPath := c.String("config"); cfgPath != "" {
		loaded, err := LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config %q: %w", cfgPath, err)
		}
		cfg = loaded
		if cfg.Name != "" {
			name = cfg.Name
		}
		if cfg.Listen != "" {
			listen = cfg.Listen
		}
	}

	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := group.NewEd25519()
	priv, err := st.LoadKey(s, name)
	if err != nil {
		return err
	}

	if cfg != nil && cfg.CacheMax > cfg.CacheMin {
		if err := priv.SetCache(s, cfg.CacheMin, cfg.CacheMax); err != nil {
			return err
		}
	}
	if cfg != nil && cfg.MetricsBind != "" {
		metrics.Start(cfg.MetricsBind)
	}

	srv := httpapi.New(s, priv, log.DefaultLogger())
	fmt.Fprintf(output, "serving on %s\n", listen)
	return http.ListenAndServe(listen, srv.Handler(os.Stdout))
}
