// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/joho/godotenv"

	"poolcost/core/pricing"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "POOLCOST_"

// Config is the main application configuration
type Config struct {
	// Logging contains logging configuration
	Logging LoggingConfig `json:"logging" hcl:"logging,block"`

	// Store selects where franchise rate tables live
	Store StoreConfig `json:"store" hcl:"store,block"`

	// Cache contains rate-table cache configuration
	Cache CacheConfig `json:"cache" hcl:"cache,block"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" hcl:"server,block"`

	// Engine contains calculation defaults
	Engine EngineConfig `json:"engine" hcl:"engine,block"`
}

// LoggingConfig mirrors logging.Config
type LoggingConfig struct {
	Level       string `json:"level" hcl:"level"`
	Format      string `json:"format" hcl:"format"`
	Output      string `json:"output" hcl:"output"`
	Development bool   `json:"development" hcl:"development"`
}

// StoreConfig selects the rate-table store
type StoreConfig struct {
	// Driver is memory, sqlite or postgres
	Driver string `json:"driver" hcl:"driver"`

	// Path is the sqlite database file
	Path string `json:"path" hcl:"path"`

	// DSN is the postgres connection string
	DSN string `json:"dsn,omitempty" hcl:"dsn"`

	// MaxConns caps the postgres pool
	MaxConns int `json:"max_conns" hcl:"max_conns"`
}

// CacheConfig contains cache-related settings
type CacheConfig struct {
	// TTL is a Go duration string
	TTL        string `json:"ttl" hcl:"ttl"`
	MaxEntries int    `json:"max_entries" hcl:"max_entries"`
}

// ServerConfig contains HTTP settings
type ServerConfig struct {
	Addr         string `json:"addr" hcl:"addr"`
	ReadTimeout  string `json:"read_timeout" hcl:"read_timeout"`
	WriteTimeout string `json:"write_timeout" hcl:"write_timeout"`
}

// EngineConfig contains calculation defaults
type EngineConfig struct {
	// UseTableDiscounts applies the rate table's PAP discounts when a
	// request carries none
	UseTableDiscounts bool `json:"use_table_discounts" hcl:"use_table_discounts"`

	// FranchiseID is used when a specification names none
	FranchiseID string `json:"franchise_id" hcl:"franchise_id"`

	// RatesFile is a rate-table override document for the CLI
	RatesFile string `json:"rates_file,omitempty" hcl:"rates_file"`
}

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".poolcost", "rates.db")

	return &Config{
		Logging: LoggingConfig(logging.DefaultConfig()),
		Store: StoreConfig{
			Driver:   DriverMemory,
			Path:     dbPath,
			MaxConns: 10,
		},
		Cache: CacheConfig{
			TTL:        "5m",
			MaxEntries: 256,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "15s",
			WriteTimeout: "30s",
		},
		Engine: EngineConfig{
			FranchiseID: pricing.DefaultFranchise,
		},
	}
}

// fileConfig is the decoding shape. Every block and attribute is
// optional so a file only needs to name what it changes.
type fileConfig struct {
	Logging *struct {
		Level       *string `hcl:"level,optional"`
		Format      *string `hcl:"format,optional"`
		Output      *string `hcl:"output,optional"`
		Development *bool   `hcl:"development,optional"`
	} `hcl:"logging,block"`
	Store *struct {
		Driver   *string `hcl:"driver,optional"`
		Path     *string `hcl:"path,optional"`
		DSN      *string `hcl:"dsn,optional"`
		MaxConns *int    `hcl:"max_conns,optional"`
	} `hcl:"store,block"`
	Cache *struct {
		TTL        *string `hcl:"ttl,optional"`
		MaxEntries *int    `hcl:"max_entries,optional"`
	} `hcl:"cache,block"`
	Server *struct {
		Addr         *string `hcl:"addr,optional"`
		ReadTimeout  *string `hcl:"read_timeout,optional"`
		WriteTimeout *string `hcl:"write_timeout,optional"`
	} `hcl:"server,block"`
	Engine *struct {
		UseTableDiscounts *bool   `hcl:"use_table_discounts,optional"`
		FranchiseID       *string `hcl:"franchise_id,optional"`
		RatesFile         *string `hcl:"rates_file,optional"`
	} `hcl:"engine,block"`
}

// Load reads .env, then the config file at path (HCL, or JSON when the
// name ends in .json), then environment overrides. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(errors.TypeConfig, err, "read %s", path)
		default:
			if err := config.decode(path, data); err != nil {
				return nil, err
			}
		}
	}

	if err := config.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "load %s", f)
		}
	}
	return nil
}

func (c *Config) decode(path string, data []byte) error {
	var file fileConfig
	if err := hclsimple.Decode(path, data, nil, &file); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "decode %s", path)
	}

	if b := file.Logging; b != nil {
		setString(&c.Logging.Level, b.Level)
		setString(&c.Logging.Format, b.Format)
		setString(&c.Logging.Output, b.Output)
		setBool(&c.Logging.Development, b.Development)
	}
	if b := file.Store; b != nil {
		setString(&c.Store.Driver, b.Driver)
		setString(&c.Store.Path, b.Path)
		setString(&c.Store.DSN, b.DSN)
		setInt(&c.Store.MaxConns, b.MaxConns)
	}
	if b := file.Cache; b != nil {
		setString(&c.Cache.TTL, b.TTL)
		setInt(&c.Cache.MaxEntries, b.MaxEntries)
	}
	if b := file.Server; b != nil {
		setString(&c.Server.Addr, b.Addr)
		setString(&c.Server.ReadTimeout, b.ReadTimeout)
		setString(&c.Server.WriteTimeout, b.WriteTimeout)
	}
	if b := file.Engine; b != nil {
		setBool(&c.Engine.UseTableDiscounts, b.UseTableDiscounts)
		setString(&c.Engine.FranchiseID, b.FranchiseID)
		setString(&c.Engine.RatesFile, b.RatesFile)
	}
	return nil
}

// ApplyEnv applies POOLCOST_* overrides and DATABASE_URL. DATABASE_URL
// switches the memory driver to postgres.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"LOG_LEVEL":    &c.Logging.Level,
		"LOG_FORMAT":   &c.Logging.Format,
		"LOG_OUTPUT":   &c.Logging.Output,
		"STORE_DRIVER": &c.Store.Driver,
		"STORE_PATH":   &c.Store.Path,
		"CACHE_TTL":    &c.Cache.TTL,
		"SERVER_ADDR":  &c.Server.Addr,
		"FRANCHISE_ID": &c.Engine.FranchiseID,
		"RATES_FILE":   &c.Engine.RatesFile,
	}
	for key, dst := range strs {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"LOG_DEVELOPMENT":     &c.Logging.Development,
		"USE_TABLE_DISCOUNTS": &c.Engine.UseTableDiscounts,
	}
	for key, dst := range bools {
		if v := getenv(EnvPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Newf(errors.TypeConfig, "%s%s: %q is not a boolean", EnvPrefix, key, v)
			}
			*dst = b
		}
	}

	if v := getenv(EnvPrefix + "CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Newf(errors.TypeConfig, "%sCACHE_MAX_ENTRIES: %q is not a number", EnvPrefix, v)
		}
		c.Cache.MaxEntries = n
	}

	if dsn := getenv("DATABASE_URL"); dsn != "" {
		c.Store.DSN = dsn
		if c.Store.Driver == DriverMemory {
			c.Store.Driver = DriverPostgres
		}
	}
	return nil
}

// Validate checks values that are parsed later
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return errors.Newf(errors.TypeConfig, "store.driver %q is not one of memory, sqlite, postgres", c.Store.Driver)
	}
	if c.Store.Driver == DriverPostgres && c.Store.DSN == "" {
		return errors.New(errors.TypeConfig, "store.dsn or DATABASE_URL is required for postgres")
	}
	for name, v := range map[string]string{
		"cache.ttl":            c.Cache.TTL,
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s", name)
		}
	}
	return nil
}

// LogConfig converts to the logging package's config
func (c *Config) LogConfig() logging.Config {
	return logging.Config(c.Logging)
}

// CachePolicy converts the cache block
func (c *Config) CachePolicy() *pricing.CachePolicy {
	policy := pricing.DefaultCachePolicy()
	if d, err := time.ParseDuration(c.Cache.TTL); err == nil {
		policy.TTL = d
	}
	if c.Cache.MaxEntries > 0 {
		policy.MaxEntries = c.Cache.MaxEntries
	}
	return policy
}

// Timeouts returns the server read and write timeouts
func (c *Config) Timeouts() (read, write time.Duration) {
	read, _ = time.ParseDuration(c.Server.ReadTimeout)
	write, _ = time.ParseDuration(c.Server.WriteTimeout)
	return read, write
}

// Save writes the configuration as HCL, or JSON for a .json path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "create %s", dir)
	}

	var data []byte
	if strings.HasSuffix(path, ".json") {
		var err error
		if data, err = json.MarshalIndent(c, "", "  "); err != nil {
			return errors.Internal("encode config", err)
		}
	} else {
		f := hclwrite.NewEmptyFile()
		gohcl.EncodeIntoBody(c, f.Body())
		data = f.Bytes()
	}
	return os.WriteFile(path, data, 0644)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
