package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
)

// SetupInterruptHandler cancels the returned context on the first SIGINT or
// SIGTERM so in-flight downloads can stop at a unit boundary. A second
// signal cleans the output folder and exits immediately.
func SetupInterruptHandler(parent context.Context, outputDir string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	stop := make(chan struct{})
	var once sync.Once

	go func() {
		select {
		case <-sig:
		case <-stop:
			return
		}

		fmt.Println("\nInterrupt received. Stopping downloads...")
		cancel()

		select {
		case <-sig:
		case <-stop:
			return
		}

		fmt.Println("\nSecond interrupt. Cleaning up...")
		CleanupPartialFiles(outputDir)
		RemoveIfEmpty(outputDir)
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()

	return ctx, func() {
		once.Do(func() {
			signal.Stop(sig)
			close(stop)
			cancel()
		})
	}
}

// CleanupPartialFiles removes temporary files left behind by atomic writes.
func CleanupPartialFiles(outputDir string) int {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, PartSuffix) {
			continue
		}

		full := filepath.Join(outputDir, name)
		if err := os.Remove(full); err != nil {
			fmt.Printf("Error cleaning up %s: %v\n", full, err)
			continue
		}
		removed++
	}

	return removed
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Printf("Removed empty output folder: %s\n", dir)
		}
	}
}
