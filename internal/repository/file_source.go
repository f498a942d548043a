package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// pricingFile is the YAML layout of a rate card:
//
//	monochrome:
//	  single_sided: {base_price: 2, base_limit: 10, extra_price: 1}
//
// Mode names accept the same aliases as model.ParseColorMode and
// model.ParseDuplexMode.
type pricingFile map[string]map[string]model.PricingTier

// ParsePricingYAML decodes and validates a rate card. Cells may be omitted.
func ParsePricingYAML(data []byte) (model.PricingConfiguration, error) {
	var file pricingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return model.PricingConfiguration{}, fmt.Errorf("decode pricing yaml: %w", err)
	}

	tiers := make(map[model.TierKey]model.PricingTier)
	for colorName, row := range file {
		color, err := model.ParseColorMode(colorName)
		if err != nil {
			return model.PricingConfiguration{}, err
		}
		for duplexName, tier := range row {
			duplex, err := model.ParseDuplexMode(duplexName)
			if err != nil {
				return model.PricingConfiguration{}, err
			}
			key := model.TierKey{Color: color, Duplex: duplex}
			if _, dup := tiers[key]; dup {
				return model.PricingConfiguration{}, fmt.Errorf("%w: duplicate pricing cell %s", model.ErrInvalidArgument, key)
			}
			tiers[key] = tier
		}
	}
	return model.NewPricingConfiguration(tiers)
}

// MarshalPricingYAML encodes cfg in the layout read by ParsePricingYAML.
func MarshalPricingYAML(cfg model.PricingConfiguration) ([]byte, error) {
	names := map[model.ColorMode]string{model.Monochrome: "monochrome", model.Color: "color"}
	sides := map[model.DuplexMode]string{model.SingleSided: "single_sided", model.DoubleSided: "double_sided"}

	file := pricingFile{}
	for _, cell := range cfg.Cells() {
		row, ok := file[names[cell.ColorMode]]
		if !ok {
			row = map[string]model.PricingTier{}
			file[names[cell.ColorMode]] = row
		}
		row[sides[cell.DuplexMode]] = cell.PricingTier
	}
	return yaml.Marshal(file)
}

// LoadPricingFile reads and parses a rate card from disk.
func LoadPricingFile(path string) (model.PricingConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PricingConfiguration{}, err
	}
	cfg, err := ParsePricingYAML(data)
	if err != nil {
		return model.PricingConfiguration{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FilePricingSource serves a rate card loaded from a YAML file and, once
// Start is called, reloads it whenever the file changes. A file that fails
// to parse is logged and the previous configuration stays in effect.
type FilePricingSource struct {
	path     string
	current  atomic.Pointer[model.PricingConfiguration]
	debounce time.Duration
	onReload func(model.PricingConfiguration)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// FileSourceOption configures a FilePricingSource.
type FileSourceOption func(*FilePricingSource)

// WithReloadDebounce sets how long to wait after the last change before
// reloading. Editors often write a file in several steps.
func WithReloadDebounce(d time.Duration) FileSourceOption {
	return func(s *FilePricingSource) {
		s.debounce = d
	}
}

// WithReloadHook registers fn to run after every successful reload.
func WithReloadHook(fn func(model.PricingConfiguration)) FileSourceOption {
	return func(s *FilePricingSource) {
		s.onReload = fn
	}
}

// NewFilePricingSource loads path. It fails if the initial load fails.
func NewFilePricingSource(path string, opts ...FileSourceOption) (*FilePricingSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	s := &FilePricingSource{path: abs, debounce: 250 * time.Millisecond}
	for _, opt := range opts {
		opt(s)
	}

	cfg, err := LoadPricingFile(abs)
	if err != nil {
		return nil, err
	}
	s.current.Store(&cfg)
	return s, nil
}

// Current returns the most recently loaded configuration.
func (s *FilePricingSource) Current() model.PricingConfiguration {
	return *s.current.Load()
}

// Path returns the absolute path of the watched file.
func (s *FilePricingSource) Path() string {
	return s.path
}

// Start watches the file's directory until ctx is done or Stop is called.
// Watching the directory rather than the file survives editors that replace
// the file by rename.
func (s *FilePricingSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return err
	}

	s.watcher = w
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(ctx, w, s.stopCh, s.doneCh)

	log.Info().Str("path", s.path).Msg("Watching pricing file")
	return nil
}

// Stop ends watching and waits for the watch loop to exit.
func (s *FilePricingSource) Stop() {
	s.mu.Lock()
	w, stopCh, doneCh := s.watcher, s.stopCh, s.doneCh
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return
	}
	close(stopCh)
	<-doneCh
	_ = w.Close()
}

func (s *FilePricingSource) run(ctx context.Context, w *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(s.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Str("path", s.path).Msg("Pricing file watcher error")
		case <-timer.C:
			s.reload()
		}
	}
}

func (s *FilePricingSource) reload() {
	cfg, err := LoadPricingFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", s.path).Msg("Pricing file removed, keeping previous rates")
			return
		}
		log.Error().Err(err).Str("path", s.path).Msg("Pricing file reload failed, keeping previous rates")
		return
	}
	s.current.Store(&cfg)
	log.Info().Str("path", s.path).Int("cells", cfg.Len()).Msg("Pricing file reloaded")
	if s.onReload != nil {
		s.onReload(cfg)
	}
}
