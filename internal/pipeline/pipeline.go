// Package pipeline runs one chapter download end to end: fetch the chapter
// page, extract the page list, download the pages in parallel and optionally
// assemble them into a single document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/brogergvhs/chapterdl/internal/document"
	"github.com/brogergvhs/chapterdl/internal/downloader"
	"github.com/brogergvhs/chapterdl/internal/format"
	"github.com/brogergvhs/chapterdl/internal/providers"
	"github.com/brogergvhs/chapterdl/internal/util"

	_ "github.com/brogergvhs/chapterdl/internal/providers/generic"
	_ "github.com/brogergvhs/chapterdl/internal/providers/readmanga"
)

const maxChapterPageBytes = 16 << 20

type Logger interface {
	Debugf(msg string, args ...any)
}

type Pipeline struct {
	pageClient  func(p *plan) *http.Client
	fetchClient downloader.ClientFactory
	notifier    Notifier
	log         Logger
}

type Option func(*Pipeline)

// WithPageClient replaces the client used for the chapter page request.
func WithPageClient(c *http.Client) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.pageClient = func(*plan) *http.Client { return c }
		}
	}
}

// WithFetchClientFactory replaces the per-worker client constructor of the
// page downloader.
func WithFetchClientFactory(f downloader.ClientFactory) Option {
	return func(p *Pipeline) {
		p.fetchClient = f
	}
}

func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) {
		p.notifier = n
	}
}

func WithLogger(l Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	p.pageClient = p.defaultPageClient

	for _, o := range opts {
		o(p)
	}

	return p
}

func (p *Pipeline) defaultPageClient(pl *plan) *http.Client {
	opts := util.HTTPClientOptions{
		Timeout:          pl.Timeout,
		UserAgent:        pl.UserAgent,
		CloudflareBypass: pl.CloudflareBypass,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
	if p.log != nil {
		opts.DebugLogger = p.log
	}

	return util.NewHTTPClient(opts)
}

// Run executes one request. Invalid requests, an uncreatable output
// directory, an unreachable chapter page and extraction failures abort the
// run with an error and no report. Per-page and assembly failures are
// recorded in the report instead. If ctx is cancelled while pages are being
// fetched, the partial report is returned together with the context error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	pl, err := req.validate()
	if err != nil {
		p.enter(Failed, err.Error())
		return nil, err
	}

	if err := os.MkdirAll(pl.OutputDir, 0o755); err != nil {
		err = fmt.Errorf("create output dir %s: %w", pl.OutputDir, err)
		p.enter(Failed, err.Error())
		return nil, err
	}

	p.enter(Extracting, "Fetching chapter page "+pl.URL)

	descs, err := p.extract(ctx, pl)
	if err != nil {
		p.enter(Failed, err.Error())
		return nil, err
	}

	report := &Report{
		Total:             len(descs),
		Failed:            []string{},
		DocumentRequested: pl.MakeDocument,
		DocumentOnly:      pl.DocumentOnly,
	}

	workers := downloader.EffectiveWorkers(pl.Workers, len(descs))
	p.enter(Fetching, fmt.Sprintf("Parallel download: %d worker(s), pages: %d", workers, len(descs)))

	var dlOpts []downloader.Option
	if p.fetchClient != nil {
		dlOpts = append(dlOpts, downloader.WithClientFactory(p.fetchClient))
	}
	if p.log != nil {
		dlOpts = append(dlOpts, downloader.WithLogger(p.log))
	}

	dl := downloader.New(downloader.Config{
		Workers:          pl.Workers,
		Timeout:          pl.Timeout,
		UserAgent:        pl.UserAgent,
		Referer:          pl.URL,
		OutputDir:        pl.OutputDir,
		BytesOnly:        pl.DocumentOnly,
		CloudflareBypass: pl.CloudflareBypass,
	}, dlOpts...)

	results := dl.FetchAll(ctx, descs, func(pr downloader.Progress) {
		p.notify(Event{
			State:   Fetching,
			Kind:    KindFetch,
			Message: fetchMessage(pr),
			Done:    pr.Done,
			Total:   pr.Total,
			Index:   pr.Result.Index,
			Size:    pr.Result.Size,
			Err:     pr.Result.Err,
		})
	})

	p.enter(Collating, "")
	c := downloader.Collate(results)
	report.Saved = len(c.Successes)
	report.Failed = c.Failures

	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("download interrupted: %w", err)
		p.enter(Failed, err.Error())
		return report, err
	}

	if !pl.MakeDocument {
		p.enter(Done, "Document assembly not requested")
		return report, nil
	}

	if report.Saved == 0 {
		report.DocumentError = noPagesToAssemble
		p.enter(Skipped, noPagesToAssemble)
		p.enter(Done, "")
		return report, nil
	}

	docPath := filepath.Join(pl.OutputDir, format.DocumentName(pl.DocumentName, pl.docFormat))
	p.enter(Assembling, fmt.Sprintf("Assembling %d page(s) into %s", report.Saved, filepath.Base(docPath)))

	asm := document.NewAssembler(pl.docFormat, document.WithProgress(func(pos, total int, pg document.Page) {
		p.notify(Event{
			State:   Assembling,
			Kind:    KindAssemble,
			Message: fmt.Sprintf("[%d/%d] Added %s", pos, total, pg.Identifier()),
			Done:    pos,
			Total:   total,
			Index:   pg.Index,
		})
	}))

	if err := asm.Assemble(c.Pages(), docPath); err != nil {
		report.DocumentError = err.Error()
		p.notify(Event{State: Assembling, Kind: KindInfo, Message: "Document assembly failed", Err: err})
	} else {
		report.DocumentPath = docPath
	}

	p.enter(Done, "")

	return report, nil
}

func (p *Pipeline) extract(ctx context.Context, pl *plan) ([]providers.Descriptor, error) {
	raw, err := p.fetchPage(ctx, pl)
	if err != nil {
		return nil, fmt.Errorf("fetch chapter page: %w", err)
	}

	descs, err := pl.extractor.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("extract pages from %s: %w", pl.URL, err)
	}

	p.debugf("Extracted %d page(s) with %s\n", len(descs), pl.extractor.Name())

	return descs, nil
}

func (p *Pipeline) fetchPage(ctx context.Context, pl *plan) (string, error) {
	client := p.pageClient(pl)
	defer util.CloseIdle(client)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pl.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			p.debugf("Warning: failed to close chapter page body: %v\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxChapterPageBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxChapterPageBytes {
		return "", errors.New("chapter page larger than " + util.Human(maxChapterPageBytes))
	}

	return string(body), nil
}

func fetchMessage(pr downloader.Progress) string {
	r := pr.Result
	switch {
	case !r.OK():
		return fmt.Sprintf("[%d/%d] Page #%03d failed", pr.Done, pr.Total, r.Index)
	case r.Path != "":
		return fmt.Sprintf("[%d/%d] Saved: %s", pr.Done, pr.Total, filepath.Base(r.Path))
	default:
		return fmt.Sprintf("[%d/%d] Received: #%03d", pr.Done, pr.Total, r.Index)
	}
}

func (p *Pipeline) enter(s State, msg string) {
	p.debugf("State -> %s\n", s)
	p.notify(Event{State: s, Kind: KindState, Message: msg})
}

func (p *Pipeline) notify(e Event) {
	if p.notifier != nil {
		p.notifier.Notify(e)
	}
}

func (p *Pipeline) debugf(msg string, args ...any) {
	if p.log != nil {
		p.log.Debugf(msg, args...)
	}
}
