package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/chapterdl/internal/config"
	"github.com/brogergvhs/chapterdl/internal/pipeline"
	"github.com/brogergvhs/chapterdl/internal/ui"
	"github.com/brogergvhs/chapterdl/internal/util"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagURL string

	// document
	flagDocument       bool
	flagDocumentName   string
	flagDocumentOnly   bool
	flagDocumentFormat string

	// runtime
	flagOutput   string
	flagWorkers  int
	flagProvider string
	flagTimeout  time.Duration
	flagReport   string

	// transport
	flagUserAgent string
	flagCFBypass  bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download one chapter and optionally assemble it into a PDF or CBZ. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	downloadCmd.Flags().StringVar(&flagURL, "url", "", "chapter page URL")

	// document
	downloadCmd.Flags().BoolVar(&flagDocument, "document", false, "assemble downloaded pages into one document")
	downloadCmd.Flags().StringVar(&flagDocumentName, "document-name", "", "document file name (suffix added if missing)")
	downloadCmd.Flags().BoolVar(&flagDocumentOnly, "document-only", false, "keep pages in memory and write only the document")
	downloadCmd.Flags().StringVar(&flagDocumentFormat, "format", "", "document format: pdf or cbz")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for pages and the document")
	downloadCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel page downloads (1-16)")
	downloadCmd.Flags().StringVar(&flagProvider, "provider", "", "page list extractor: readmanga or generic")
	downloadCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout, e.g. 20s")
	downloadCmd.Flags().StringVar(&flagReport, "report", "text", "summary format: text or yaml")

	// transport
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().BoolVar(&flagCFBypass, "cf-bypass", false, "wrap requests with a Cloudflare bypass transport")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	if flagReport != "text" && flagReport != "yaml" {
		return fmt.Errorf("unknown report format %q (use text or yaml)", flagReport)
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Output:           flagOutput,
		Workers:          flagWorkers,
		MakeDocument:     flagDocument,
		DocumentName:     flagDocumentName,
		DocumentOnly:     flagDocumentOnly,
		DocumentFormat:   flagDocumentFormat,
		Provider:         flagProvider,
		Timeout:          flagTimeout,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCFBypass,
	})
	if err != nil {
		return err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	if strings.TrimSpace(flagURL) == "" {
		return errors.New("missing --url")
	}

	logSvc := ui.NewLogger(cfg.Debug)
	quiet := flagReport == "yaml"

	if !quiet {
		if usedPath != "" {
			fmt.Printf("Config file: %s\n", usedPath)
		}
		fmt.Println("Full config:")
		cfg.Print()
		fmt.Println()
	}

	ctx, stop := util.SetupInterruptHandler(context.Background(), cfg.Output)
	defer stop()

	var progressOut io.Writer = os.Stdout
	if quiet {
		progressOut = io.Discard
		logSvc.WithOutput(os.Stderr)
	}
	pm := ui.NewProgressManager(progressOut)
	sink := ui.NewSink(logSvc, pm, &ui.Stats{})

	p := pipeline.New(
		pipeline.WithNotifier(sink),
		pipeline.WithLogger(logSvc),
	)

	start := time.Now()
	report, runErr := p.Run(ctx, pipeline.Request{
		URL:              flagURL,
		OutputDir:        cfg.Output,
		MakeDocument:     cfg.MakeDocument,
		DocumentName:     cfg.DocumentName,
		DocumentOnly:     cfg.DocumentOnly,
		Workers:          cfg.Workers,
		DocumentFormat:   cfg.DocumentFormat,
		Provider:         cfg.Provider,
		Timeout:          timeout,
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
	})
	pm.Close()

	if runErr != nil && report == nil {
		return runErr
	}

	if quiet {
		if err := yaml.NewEncoder(os.Stdout).Encode(report); err != nil {
			return err
		}
		return runErr
	}

	printSummary(report, sink.Stats(), time.Since(start))

	return runErr
}

func printSummary(r *pipeline.Report, stats *ui.Stats, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Pages:    %d/%d\n", r.Saved, r.Total)
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", elapsed.Round(time.Second))

	if len(r.Failed) > 0 {
		fmt.Printf("\nFailed pages (%d):\n", len(r.Failed))
		for _, f := range r.Failed {
			fmt.Printf("  %s\n", f)
		}
	}

	if r.DocumentRequested {
		fmt.Println()
		if r.DocumentPath != "" {
			fmt.Printf("Document: %s\n", r.DocumentPath)
		}
		if r.DocumentError != "" {
			fmt.Printf("Document not created: %s\n", r.DocumentError)
		}
	}

	fmt.Println("\nAll done.")
}
