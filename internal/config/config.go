package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/chapterdl/internal/downloader"
	"github.com/brogergvhs/chapterdl/internal/format"
	"github.com/brogergvhs/chapterdl/internal/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output  string `yaml:"output"`
	Workers int    `yaml:"workers"`
	Debug   bool   `yaml:"debug"`

	MakeDocument   bool   `yaml:"make_document"`
	DocumentName   string `yaml:"document_name"`
	DocumentOnly   bool   `yaml:"document_only"`
	DocumentFormat string `yaml:"document_format"`

	Provider         string `yaml:"provider"`
	Timeout          string `yaml:"timeout"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`
}

// Options holds command line overrides. Zero values leave the loaded config
// untouched.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	Workers          int
	MakeDocument     bool
	DocumentName     string
	DocumentOnly     bool
	DocumentFormat   string
	Provider         string
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
}

const (
	defaultOutput   = "manga"
	defaultProvider = "readmanga"
)

func DefaultConfig() *Config {
	return &Config{
		Output:         defaultOutput,
		Workers:        downloader.DefaultWorkers,
		DocumentName:   format.DefaultDocumentName,
		DocumentFormat: string(format.PDF),
		Provider:       defaultProvider,
		Timeout:        downloader.DefaultTimeout.String(),
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return util.WriteFileAtomic(path, data)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseYAML(b)
}

func parseYAML(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadMerged returns the active profile with opts applied on top, plus a
// description of where the config came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || (err == nil && activePath == "") {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `chapterdl config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Debug {
		c.Debug = true
	}
	if o.MakeDocument {
		c.MakeDocument = true
	}
	if o.DocumentName != "" {
		c.DocumentName = o.DocumentName
	}
	if o.DocumentOnly {
		c.DocumentOnly = true
	}
	if o.DocumentFormat != "" {
		c.DocumentFormat = o.DocumentFormat
	}
	if o.Provider != "" {
		c.Provider = o.Provider
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout.String()
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = defaultOutput
	}
	if c.Workers == 0 {
		c.Workers = downloader.DefaultWorkers
	}
	if c.DocumentName == "" {
		c.DocumentName = format.DefaultDocumentName
	}
	if c.DocumentFormat == "" {
		c.DocumentFormat = string(format.PDF)
	}
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.Timeout == "" {
		c.Timeout = downloader.DefaultTimeout.String()
	}
}

// TimeoutDuration parses the timeout field.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return downloader.DefaultTimeout, nil
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}

	return d, nil
}

func (c *Config) Print() {
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -workers: %d\n", c.Workers)
	fmt.Printf(" -provider: %s\n", c.Provider)
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	if c.MakeDocument {
		fmt.Printf(" -make_document: %t\n", c.MakeDocument)
		fmt.Printf(" -document_name: %s\n", c.DocumentName)
		fmt.Printf(" -document_format: %s\n", c.DocumentFormat)
	}
	if c.DocumentOnly {
		fmt.Printf(" -document_only: %t\n", c.DocumentOnly)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
}
