// Package config reads CLI configuration from flags, the environment and
// .env files, and builds the backend it describes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/codetesla51/smartstore/smartstore"
	"github.com/codetesla51/smartstore/store"
)

// EnvPrefix is prepended to every environment variable, e.g. SMARTSTORE_BACKEND.
const EnvPrefix = "smartstore"

// Supported backend names.
const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds everything the CLI needs to open a store.
type Config struct {
	Namespace   string
	Backend     string
	BoltPath    string
	BoltBucket  string
	RedisAddr   string
	PostgresDSN string
	MemoryQuota int64
	Codec       string
	LogLevel    string
}

// Init loads .env files and points v at the environment. Variables already
// set in the environment win over .env files.
func Init(v *viper.Viper) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// SetupFlags adds the configuration flags to cmd as persistent flags.
func SetupFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("namespace", "app", "namespace prepended to every key")
	flags.String("backend", BackendBolt, "backend to use (memory, bolt, redis, postgres)")
	flags.String("bolt-path", DefaultBoltPath(), "bbolt database file")
	flags.String("bolt-bucket", "smartstore", "bbolt bucket name")
	flags.String("redis-addr", "localhost:6379", "redis address")
	flags.String("postgres-dsn", "", "postgres connection string")
	flags.Int64("memory-quota", 5*1024*1024, "memory backend quota in bytes (0 = unlimited)")
	flags.String("codec", "tagged", "stored representation (tagged, envelope)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

// BindFlags binds a command's flags to viper.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	return v.BindPFlags(flags)
}

// Load reads the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		Namespace:   v.GetString("namespace"),
		Backend:     strings.ToLower(v.GetString("backend")),
		BoltPath:    v.GetString("bolt-path"),
		BoltBucket:  v.GetString("bolt-bucket"),
		RedisAddr:   v.GetString("redis-addr"),
		PostgresDSN: v.GetString("postgres-dsn"),
		MemoryQuota: v.GetInt64("memory-quota"),
		Codec:       v.GetString("codec"),
		LogLevel:    v.GetString("log-level"),
	}
	if c.Namespace == "" {
		return nil, fmt.Errorf("namespace must not be empty")
	}
	if _, err := smartstore.CodecByName(c.Codec); err != nil {
		return nil, err
	}
	switch c.Backend {
	case BackendMemory, BackendBolt, BackendRedis:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return nil, fmt.Errorf("backend %s requires postgres-dsn", c.Backend)
		}
	default:
		return nil, fmt.Errorf("invalid backend %s", c.Backend)
	}
	return c, nil
}

// OpenBackend opens the configured backend. The returned function releases
// it and is never nil.
func (c *Config) OpenBackend() (store.Backend, func() error, error) {
	noop := func() error { return nil }
	switch c.Backend {
	case BackendMemory:
		return store.NewMemoryStore(c.MemoryQuota), noop, nil
	case BackendBolt:
		b, err := store.OpenBoltStore(c.BoltPath, c.BoltBucket)
		if err != nil {
			return nil, noop, fmt.Errorf("open bolt store: %w", err)
		}
		return b, b.Close, nil
	case BackendRedis:
		r, err := store.NewRedisStore(c.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil
	case BackendPostgres:
		d, err := store.NewDatabaseStore(c.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return d, d.Close, nil
	default:
		return nil, noop, fmt.Errorf("invalid backend %s", c.Backend)
	}
}

// DefaultBoltPath returns ~/.cache/smartstore/store.bbolt, or a path in the
// working directory when there is no home directory.
func DefaultBoltPath() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", "smartstore", "store.bbolt")
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Store")
	addField("Namespace", c.Namespace)
	addField("Codec", c.Codec)

	addSection("Backend")
	addField("Type", c.Backend)
	switch c.Backend {
	case BackendMemory:
		addField("Quota (bytes)", strconv.FormatInt(c.MemoryQuota, 10))
	case BackendBolt:
		addField("Path", c.BoltPath)
		addField("Bucket", c.BoltBucket)
	case BackendRedis:
		addField("Address", c.RedisAddr)
	case BackendPostgres:
		addField("DSN", "(set)")
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
