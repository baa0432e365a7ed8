package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// PartSuffix marks in-progress files. Anything carrying it is garbage left
// by an interrupted run.
const PartSuffix = ".part"

// CreateAtomic opens a temporary file next to dst. The returned commit
// function closes it and renames it over dst; abort closes and removes it.
// Exactly one of them must be called.
func CreateAtomic(dst string) (f *os.File, commit func() error, abort func(), err error) {
	dir, base := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}

	f, err = os.CreateTemp(dir, "."+base+".*"+PartSuffix)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create temp for %s: %w", dst, err)
	}
	tmp := f.Name()

	abort = func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing temp file %s: %v", tmp, cerr)
		}
		_ = os.Remove(tmp)
	}

	commit = func() error {
		if err := f.Sync(); err != nil {
			abort()
			return fmt.Errorf("sync %s: %w", dst, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("close %s: %w", dst, err)
		}
		if err := os.Chmod(tmp, 0644); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("chmod %s: %w", dst, err)
		}
		if err := os.Rename(tmp, dst); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", dst, err)
		}

		return nil
	}

	return f, commit, abort, nil
}

// WriteFileAtomic writes data to path so that path either holds the complete
// content or does not exist at all.
func WriteFileAtomic(path string, data []byte) error {
	return WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func WriteAtomic(path string, fill func(w io.Writer) error) error {
	f, commit, abort, err := CreateAtomic(path)
	if err != nil {
		return err
	}

	if err := fill(f); err != nil {
		abort()
		return err
	}

	return commit()
}
