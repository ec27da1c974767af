// Package config resolves runtime settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/campuslf/lostfound/internal/model"
)

// ErrHelp is returned by Load when -h/--help was requested.
var ErrHelp = pflag.ErrHelp

// Config holds all runtime settings.
type Config struct {
	Addr           string
	SecretKey      string
	DBPath         string
	UploadDir      string
	AdminUser      string
	AdminPassword  string
	MaxReviewLen   int
	MaxUploadBytes int64
	LogPath        string
}

const usage = `Usage: lostfound [flags]

Flags:
  -a, --addr <host:port>     listen address (env PORT sets the port; default :5000)
  -d, --db <path>            SQLite database path (env LOSTFOUND_DB; default lostandfound.db)
      --uploads <dir>        photo upload directory (env LOSTFOUND_UPLOADS; default uploads)
  -u, --user <name>          admin username on first run (env LOSTFOUND_ADMIN_USER; default admin)
      --secret-key <key>     session signing key (env SECRET_KEY; default stored in the database)
      --max-review-len <n>   maximum review length (env LOSTFOUND_MAX_REVIEW_LEN; default 300)
      --max-upload <size>    maximum upload size, e.g. 10MiB (env LOSTFOUND_MAX_UPLOAD)
  -l, --log <path>           log file path (env LOSTFOUND_LOG; default stdout/stderr only)
      --env-file <path>      dotenv file to load (default .env)
  -h, --help                 show this help and exit

The initial admin password is read from LOSTFOUND_ADMIN_PASSWORD, or
generated and printed when the database is created.
`

// Load parses args (without the program name) and resolves every setting.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("lostfound", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	var (
		addr, dbPath, uploadDir, adminUser string
		secretKey, maxUpload, logPath      string
		envFile                            string
		maxReviewLen                       int
	)
	fs.StringVarP(&addr, "addr", "a", ":5000", "")
	fs.StringVarP(&dbPath, "db", "d", "lostandfound.db", "")
	fs.StringVar(&uploadDir, "uploads", "uploads", "")
	fs.StringVarP(&adminUser, "user", "u", "admin", "")
	fs.StringVar(&secretKey, "secret-key", "", "")
	fs.IntVar(&maxReviewLen, "max-review-len", model.DefaultMaxReviewLen, "")
	fs.StringVar(&maxUpload, "max-upload", "10MiB", "")
	fs.StringVarP(&logPath, "log", "l", "", "")
	fs.StringVar(&envFile, "env-file", ".env", "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fs.Usage()
			return nil, ErrHelp
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	// Values already in the environment win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	r := resolver{fs: fs}
	cfg := &Config{
		DBPath:        r.str("db", dbPath, "LOSTFOUND_DB"),
		UploadDir:     r.str("uploads", uploadDir, "LOSTFOUND_UPLOADS"),
		AdminUser:     r.str("user", adminUser, "LOSTFOUND_ADMIN_USER"),
		AdminPassword: os.Getenv("LOSTFOUND_ADMIN_PASSWORD"),
		SecretKey:     r.str("secret-key", secretKey, "SECRET_KEY"),
		LogPath:       r.str("log", logPath, "LOSTFOUND_LOG"),
		Addr:          addr,
	}

	if !fs.Changed("addr") {
		if port := os.Getenv("PORT"); port != "" {
			if _, err := strconv.ParseUint(port, 10, 16); err != nil {
				return nil, fmt.Errorf("invalid PORT %q", port)
			}
			cfg.Addr = ":" + port
		}
	}

	n, err := r.integer("max-review-len", maxReviewLen, "LOSTFOUND_MAX_REVIEW_LEN")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("max review length must be positive, got %d", n)
	}
	cfg.MaxReviewLen = n

	size := r.str("max-upload", maxUpload, "LOSTFOUND_MAX_UPLOAD")
	limit, err := humanize.ParseBytes(size)
	if err != nil {
		return nil, fmt.Errorf("invalid max upload size %q: %w", size, err)
	}
	if limit == 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	cfg.MaxUploadBytes = int64(limit)

	if strings.TrimSpace(cfg.AdminUser) == "" {
		return nil, fmt.Errorf("admin username must not be empty")
	}

	return cfg, nil
}

// resolver picks an explicitly set flag over the environment over the
// flag's default.
type resolver struct {
	fs *pflag.FlagSet
}

func (r resolver) str(flag, value, env string) string {
	if r.fs.Changed(flag) {
		return value
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	return value
}

func (r resolver) integer(flag string, value int, env string) (int, error) {
	if r.fs.Changed(flag) {
		return value, nil
	}
	v, ok := os.LookupEnv(env)
	if !ok || v == "" {
		return value, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", env, v)
	}
	return n, nil
}
