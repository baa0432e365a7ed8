package pipeline

import (
	"net/url"
	"strings"
	"time"

	"github.com/brogergvhs/chapterdl/internal/downloader"
	"github.com/brogergvhs/chapterdl/internal/format"
	"github.com/brogergvhs/chapterdl/internal/providers"
)

const (
	DefaultOutputDir = "manga"
	DefaultProvider  = "readmanga"

	noPagesToAssemble = "no downloaded pages to assemble"
)

type Request struct {
	URL              string
	OutputDir        string
	MakeDocument     bool
	DocumentName     string
	DocumentOnly     bool
	Workers          int
	DocumentFormat   string
	Provider         string
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
}

type Report struct {
	Total             int      `json:"total" yaml:"total"`
	Saved             int      `json:"saved" yaml:"saved"`
	Failed            []string `json:"failed" yaml:"failed"`
	DocumentPath      string   `json:"document_path,omitempty" yaml:"document_path,omitempty"`
	DocumentError     string   `json:"document_error,omitempty" yaml:"document_error,omitempty"`
	DocumentRequested bool     `json:"document_requested" yaml:"document_requested"`
	DocumentOnly      bool     `json:"document_only" yaml:"document_only"`
}

// plan is a validated Request with defaults applied.
type plan struct {
	Request
	docFormat format.Document
	extractor providers.Extractor
}

func (r Request) validate() (*plan, error) {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return nil, &ConfigError{Field: "url", Reason: "chapter URL is empty"}
	}
	u, err := url.Parse(r.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ConfigError{Field: "url", Reason: "must be an absolute http(s) URL"}
	}

	if r.DocumentOnly && !r.MakeDocument {
		return nil, &ConfigError{Field: "document_only", Reason: "requires document assembly to be enabled"}
	}

	if r.Timeout < 0 {
		return nil, &ConfigError{Field: "timeout", Reason: "must not be negative"}
	}
	if r.Timeout == 0 {
		r.Timeout = downloader.DefaultTimeout
	}

	if r.Workers == 0 {
		r.Workers = downloader.DefaultWorkers
	}

	if strings.TrimSpace(r.OutputDir) == "" {
		r.OutputDir = DefaultOutputDir
	}

	doc, err := format.ParseDocument(r.DocumentFormat)
	if err != nil {
		return nil, &ConfigError{Field: "document_format", Reason: err.Error()}
	}

	if r.Provider == "" {
		r.Provider = DefaultProvider
	}
	ex, err := providers.Select(r.Provider, r.URL)
	if err != nil {
		return nil, &ConfigError{Field: "provider", Reason: err.Error()}
	}

	return &plan{Request: r, docFormat: doc, extractor: ex}, nil
}
