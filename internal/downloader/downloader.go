package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/brogergvhs/chapterdl/internal/format"
	"github.com/brogergvhs/chapterdl/internal/providers"
	"github.com/brogergvhs/chapterdl/internal/util"
)

const (
	MaxWorkers     = 16
	DefaultWorkers = 8
	DefaultTimeout = 20 * time.Second

	DefaultMaxImageBytes = 64 << 20

	acceptImages = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"
)

type Config struct {
	Workers          int
	Timeout          time.Duration
	UserAgent        string
	Referer          string
	OutputDir        string
	BytesOnly        bool
	CloudflareBypass bool
	MaxImageBytes    int64
}

// Result is the outcome of one fetch unit. It is a success iff Err is nil;
// on success either Path (saved to disk) or Data (bytes-only mode) is set.
type Result struct {
	Index       int
	URL         string
	Path        string
	Data        []byte
	ContentType string
	Size        int64
	Err         error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Failure renders the result as a line for the failure list.
func (r Result) Failure() string {
	return fmt.Sprintf("%s (%v)", r.URL, r.Err)
}

// Progress is delivered once per completed unit. Done is the 1-based
// completion ordinal, which generally differs from Result.Index.
type Progress struct {
	Done   int
	Total  int
	Result Result
}

type ClientFactory func() *http.Client

type Downloader struct {
	cfg       Config
	newClient ClientFactory
	log       interface{ Debugf(string, ...any) }
}

type Option func(*Downloader)

// WithClientFactory replaces the per-worker client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(d *Downloader) {
		if f != nil {
			d.newClient = f
		}
	}
}

func WithLogger(l interface{ Debugf(string, ...any) }) Option {
	return func(d *Downloader) {
		d.log = l
	}
}

func New(cfg Config, opts ...Option) *Downloader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = DefaultMaxImageBytes
	}

	d := &Downloader{cfg: cfg}
	d.newClient = d.defaultClient

	for _, o := range opts {
		o(d)
	}

	return d
}

func (d *Downloader) defaultClient() *http.Client {
	opts := util.HTTPClientOptions{
		Timeout:   d.cfg.Timeout,
		UserAgent: d.cfg.UserAgent,
		Headers: map[string]string{
			"Referer":         d.cfg.Referer,
			"Accept":          acceptImages,
			"Accept-Language": "en-US,en;q=0.9",
		},
		CloudflareBypass: d.cfg.CloudflareBypass,
	}
	if d.log != nil {
		opts.DebugLogger = d.log
	}

	return util.NewHTTPClient(opts)
}

// FetchAll downloads every descriptor and returns exactly one Result per
// descriptor, in completion order. It returns only after all units are done.
// onProgress is called from the calling goroutine and may be nil.
func (d *Downloader) FetchAll(ctx context.Context, descs []providers.Descriptor, onProgress func(Progress)) []Result {
	total := len(descs)
	if total == 0 {
		return nil
	}

	workers := EffectiveWorkers(d.cfg.Workers, total)
	d.debugf("Fetching %d pages with %d workers\n", total, workers)

	out := make(chan Result, total)
	go func() {
		if err := d.runPool(ctx, descs, workers, out); err != nil {
			d.debugf("Fetch stopped early: %v\n", err)
		}
		close(out)
	}()

	results := make([]Result, 0, total)
	for r := range out {
		results = append(results, r)
		if onProgress != nil {
			onProgress(Progress{Done: len(results), Total: total, Result: r})
		}
	}

	return results
}

func (d *Downloader) fetchOne(ctx context.Context, client *http.Client, desc providers.Descriptor) Result {
	res := Result{Index: desc.Index, URL: desc.URL()}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data, contentType, err := d.get(ctx, client, res.URL)
	if err != nil {
		res.Err = err
		return res
	}

	res.ContentType = contentType
	res.Size = int64(len(data))

	if d.cfg.BytesOnly {
		res.Data = data
		return res
	}

	name := fmt.Sprintf("%03d%s", desc.Index, format.Classify(res.URL, contentType))
	path := filepath.Join(d.cfg.OutputDir, name)

	if err := util.WriteFileAtomic(path, data); err != nil {
		res.Err = err
		return res
	}
	res.Path = path

	return res
}

func (d *Downloader) get(ctx context.Context, client *http.Client, u string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.debugf("Warning: failed to close response body for %s: %v\n", u, cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := readBody(resp.Body, d.cfg.MaxImageBytes)
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (d *Downloader) debugf(msg string, args ...any) {
	if d.log != nil {
		d.log.Debugf(msg, args...)
	}
}
