// Command keyvault manages a local identity vault and talks to keyvaultd.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/and161185/keyvault/internal/app"
	"github.com/and161185/keyvault/internal/config"
	"github.com/and161185/keyvault/internal/crypto"
	grpcserver "github.com/and161185/keyvault/internal/server/grpc"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

var errUsage = errors.New("usage")

// ---- session token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func tokenPath() string { return filepath.Join(config.Dir(), "session.json") }

func saveToken(tok string, exp time.Time) error {
	if err := os.MkdirAll(config.Dir(), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(tokenPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: tok, ExpiresAt: exp})
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid session (run keyvault unlock)")
	}
	return tf.AccessToken, nil
}

func clearToken() { _ = os.Remove(tokenPath()) }

// ---- environment ----

type cli struct {
	cfg     *config.Config
	verbose bool
	stdin   io.Reader
	lines   *bufio.Reader
	stdout  io.Writer
	stderr  io.Writer

	// prompt reads a secret; nil means the terminal (or a line of stdin).
	prompt func(label string) ([]byte, error)
}

func (c *cli) logger() *zap.Logger {
	if !c.verbose {
		return zap.NewNop()
	}
	log, err := c.cfg.Logger()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func (c *cli) open(ctx context.Context) (*app.Vault, error) {
	return app.Open(ctx, c.cfg, c.logger())
}

func (c *cli) dial() (*grpcserver.Client, error) {
	return grpcserver.Dial(c.cfg.Socket)
}

// printJSON writes v as indented JSON. Daemon API messages go through protojson
// so field names and well-known types match the wire schema.
func (c *cli) printJSON(v any) error {
	if m, ok := v.(proto.Message); ok {
		b, err := protojson.MarshalOptions{Multiline: true, Indent: "  ", EmitUnpopulated: true}.Marshal(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.stdout, string(b))
		return err
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) readSecret(label string) ([]byte, error) {
	if c.prompt != nil {
		return c.prompt(label)
	}
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.stderr, label+": ")
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.stderr)
		return pw, err
	}
	if c.lines == nil {
		c.lines = bufio.NewReader(c.stdin)
	}
	line, err := c.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// password resolves a secret from the flag value, then env, then a prompt.
func (c *cli) password(flagVal, env, label string) ([]byte, error) {
	if flagVal != "" {
		return []byte(flagVal), nil
	}
	if v := os.Getenv(env); v != "" {
		return []byte(v), nil
	}
	pw, err := c.readSecret(label)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, fmt.Errorf("%s: empty input", strings.ToLower(label))
	}
	return pw, nil
}

// newPassword is password with a confirmation prompt. Flag and env values are
// their own confirmation.
func (c *cli) newPassword(flagVal, env, label string) (pw, confirm []byte, err error) {
	if flagVal != "" || os.Getenv(env) != "" {
		pw, err = c.password(flagVal, env, label)
		return pw, pw, err
	}
	if pw, err = c.password("", env, label); err != nil {
		return nil, nil, err
	}
	if confirm, err = c.password("", env, "Repeat "+strings.ToLower(label)); err != nil {
		return nil, nil, err
	}
	return pw, confirm, nil
}

func wipe(bufs ...[]byte) {
	for _, b := range bufs {
		crypto.Wipe(b)
	}
}

// readAll reads a file path or "-" for stdin.
func (c *cli) readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.stdin)
	}
	return os.ReadFile(path)
}

// ---- entry point ----

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  keyvault [global flags] <command> [flags]

Global flags:
  -config path   config file (default %s)
  -vault id      vault id
  -store dir     keystore directory
  -dsn dsn       PostgreSQL DSN (overrides -store)
  -socket path   keyvaultd socket
  -v             log to stderr

Commands against the local store:
  version
  check-password [-p pw]
  init           [-p pw] [-user id]
  status
  history
  rotate         [-p pw] [-reason r]
  passwd         [-p old] [-new pw]
  settings       [-p pw] [-idle d] [-lock-on-sleep] [-lock-on-screen] [-lock-on-blur] [-lock-on-minimize]
  export         [-p pw] [-e export-pw] [-o path|dir]
  import         [-p pw] [-e export-pw] -f file

Commands against keyvaultd:
  unlock         [-p pw] [-user id]
  lock           [-reason r]
  sign           (-m msg | -f file)
  watch
  status -d

Passwords come from -p/-e/-new, then KEYVAULT_PASSWORD, KEYVAULT_EXPORT_PASSWORD,
KEYVAULT_NEW_PASSWORD, then a hidden prompt.
`, config.DefaultPath())
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("keyvault", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { usage(stderr) }
	cfgPath := global.String("config", "", "config file")
	vaultID := global.String("vault", "", "vault id")
	store := global.String("store", "", "keystore directory")
	dsn := global.String("dsn", "", "PostgreSQL DSN")
	socket := global.String("socket", "", "keyvaultd socket")
	verbose := global.Bool("v", false, "verbose logging")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() < 1 {
		usage(stderr)
		return errUsage
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *vaultID != "" {
		cfg.VaultID = *vaultID
	}
	if *store != "" {
		cfg.StoreDir = *store
	}
	if *dsn != "" {
		cfg.DSN = *dsn
	}
	if *socket != "" {
		cfg.Socket = *socket
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c := &cli{cfg: cfg, verbose: *verbose, stdin: stdin, stdout: stdout, stderr: stderr}
	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "keyvault %s (built %s)\n", version, buildDate)
		return nil
	case "check-password":
		return c.checkPassword(rest)
	case "init":
		return c.initVault(ctx, rest)
	case "status":
		return c.status(ctx, rest)
	case "history":
		return c.history(ctx, rest)
	case "rotate":
		return c.rotate(ctx, rest)
	case "passwd":
		return c.passwd(ctx, rest)
	case "settings":
		return c.settings(ctx, rest)
	case "export":
		return c.exportFile(ctx, rest)
	case "import":
		return c.importFile(ctx, rest)
	case "unlock":
		return c.unlockDaemon(ctx, rest)
	case "lock":
		return c.lockDaemon(ctx, rest)
	case "sign":
		return c.signDaemon(ctx, rest)
	case "watch":
		return c.watch(ctx, rest)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return errUsage
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
