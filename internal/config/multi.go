package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brogergvhs/chapterdl/internal/util"
)

const (
	appName      = "chapterdl"
	DefaultLabel = "Default"
	profileExt   = ".yaml"
)

var ErrNoConfig = errors.New("no config selected")

// ConfigRoot resolves the per-user config directory: %APPDATA% on Windows,
// then $XDG_CONFIG_HOME, then ~/.config.
func ConfigRoot() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func ConfigsDir() string {
	return defaultStore().profilesDir()
}

func CurrentLabelFile() string {
	return defaultStore().currentFile()
}

// Store keeps labelled YAML profiles under Root/configs and remembers the
// active label in Root/current_config.
type Store struct {
	Root string
}

func defaultStore() Store {
	return Store{Root: ConfigRoot()}
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func (s Store) profilesDir() string {
	return filepath.Join(s.Root, "configs")
}

func (s Store) currentFile() string {
	return filepath.Join(s.Root, "current_config")
}

func (s Store) path(label string) string {
	return filepath.Join(s.profilesDir(), label+profileExt)
}

func (s Store) exists(label string) bool {
	_, err := os.Stat(s.path(label))
	return err == nil
}

func (s Store) ensure() error {
	return os.MkdirAll(s.profilesDir(), 0o755)
}

func (s Store) setCurrent(label string) error {
	return util.WriteFileAtomic(s.currentFile(), []byte(label))
}

// Current returns the active label or ErrNoConfig.
func (s Store) Current() (string, error) {
	b, err := os.ReadFile(s.currentFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}

	return label, nil
}

func (s Store) ActivePath() (string, error) {
	label, err := s.Current()
	if err != nil {
		return "", err
	}

	return s.path(label), nil
}

// PathOf returns the file of an existing profile.
func (s Store) PathOf(label string) (string, error) {
	if err := validateLabel(label); err != nil {
		return "", err
	}
	if !s.exists(label) {
		return "", fmt.Errorf("config %q does not exist", label)
	}

	return s.path(label), nil
}

func (s Store) List() ([]ConfigInfo, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.profilesDir())
	if err != nil {
		return nil, err
	}

	active, _ := s.Current()

	var out []ConfigInfo
	for _, e := range entries {
		label, ok := strings.CutSuffix(e.Name(), profileExt)
		if e.IsDir() || !ok {
			continue
		}

		out = append(out, ConfigInfo{Label: label, Path: s.path(label), Active: label == active})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	return out, nil
}

func (s Store) Switch(label string) error {
	if _, err := s.PathOf(label); err != nil {
		return err
	}

	return s.setCurrent(label)
}

// Create writes a profile with default values and returns its path.
func (s Store) Create(label string) (string, error) {
	if err := s.checkNew(label); err != nil {
		return "", err
	}

	path := s.path(label)
	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

// Import copies srcPath into a new profile. The file must parse as a config.
func (s Store) Import(label, srcPath string) error {
	if err := s.checkNew(label); err != nil {
		return err
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if _, err := parseYAML(raw); err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}

	return util.WriteFileAtomic(s.path(label), raw)
}

func (s Store) Rename(oldLabel, newLabel string) error {
	if _, err := s.PathOf(oldLabel); err != nil {
		return err
	}
	if err := s.checkNew(newLabel); err != nil {
		return err
	}

	if err := os.Rename(s.path(oldLabel), s.path(newLabel)); err != nil {
		return err
	}

	if active, _ := s.Current(); active == oldLabel {
		return s.setCurrent(newLabel)
	}

	return nil
}

// Remove deletes a profile. The Default profile is only removed when force
// is set. Removing the active profile falls back to Default when possible.
func (s Store) Remove(label string, force bool) error {
	if _, err := s.PathOf(label); err != nil {
		return err
	}
	if label == DefaultLabel && !force {
		return errors.New("cannot remove the Default config without --force")
	}

	if active, _ := s.Current(); active == label {
		if label != DefaultLabel && s.exists(DefaultLabel) {
			if err := s.setCurrent(DefaultLabel); err != nil {
				return fmt.Errorf("failed switching to Default: %w", err)
			}
			fmt.Println("Fallback switched to: Default")
		} else {
			_ = os.Remove(s.currentFile())
		}
	}

	return os.Remove(s.path(label))
}

// InitDefault creates the Default profile if needed and activates it. When
// the profile already exists it is activated and os.ErrExist is returned.
func (s Store) InitDefault() (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}

	path := s.path(DefaultLabel)
	if s.exists(DefaultLabel) {
		if err := s.setCurrent(DefaultLabel); err != nil {
			return "", err
		}
		return path, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, s.setCurrent(DefaultLabel)
}

func (s Store) checkNew(label string) error {
	if err := validateLabel(label); err != nil {
		return err
	}
	if err := s.ensure(); err != nil {
		return err
	}
	if s.exists(label) {
		return fmt.Errorf("config %q already exists", label)
	}

	return nil
}

// validateLabel rejects empty labels and anything that would escape the
// configs directory.
func validateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("invalid label %q", label)
	}

	return nil
}

// Package-level helpers operate on the store under ConfigRoot.

func CurrentLabel() (string, error) {
	return defaultStore().Current()
}

func ActiveConfigPath() (string, error) {
	return defaultStore().ActivePath()
}

func ConfigPathByLabel(label string) (string, error) {
	return defaultStore().PathOf(label)
}

func ListConfigs() ([]ConfigInfo, error) {
	return defaultStore().List()
}

func SwitchConfig(label string) error {
	return defaultStore().Switch(label)
}

func CreateEmptyConfig(label string) (string, error) {
	return defaultStore().Create(label)
}

func AddConfig(label, srcPath string) error {
	return defaultStore().Import(label, srcPath)
}

func RenameConfig(oldLabel, newLabel string) error {
	return defaultStore().Rename(oldLabel, newLabel)
}

func RemoveConfig(label string, force bool) error {
	return defaultStore().Remove(label, force)
}

func InitDefaultConfig() (string, error) {
	return defaultStore().InitDefault()
}
