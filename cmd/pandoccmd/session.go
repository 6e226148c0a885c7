package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/config"
	"github.com/alnah/go-pandoc-cmd/internal/fileutil"
	"github.com/alnah/go-pandoc-cmd/internal/hints"
)

// session is the state shared by one command run: the logger and the
// configuration after environment overrides.
type session struct {
	env *Environment
	cfg *config.Config
	log *log.Logger
}

// newSession loads configuration for a command.
// Config precedence: --config, then PANDOCCMD_CONFIG, then built-in defaults.
func newSession(env *Environment, common commonFlags) (*session, error) {
	logger := newLogger(env.Stderr, common.quiet, common.verbose)
	warnUnknownEnvVars(logger, env.Environ())

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(common.config, envCfg)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &session{env: env, cfg: cfg, log: logger}, nil
}

func loadConfig(flagValue string, envCfg *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// configValues returns the config file's settings layer. output.defaultDir,
// which the environment may override, wins over defaults.outputDir.
func (s *session) configValues() pandoccmd.Values {
	for key := range s.cfg.Defaults {
		if !pandoccmd.IsSettingID(key) {
			s.log.Warnf("config: ignoring unknown setting %q", key)
		}
	}
	values := pandoccmd.Values(s.cfg.Defaults).Restrict()
	if s.cfg.Output.DefaultDir != "" {
		values["outputDir"] = s.cfg.Output.DefaultDir
	}
	return values
}

// presets opens the configured preset store. The returned close function
// releases the backend and is never nil.
func (s *session) presets() (*pandoccmd.PresetStore, func(), error) {
	noop := func() {}
	backend := s.cfg.Presets.Backend
	path := s.cfg.Presets.Path
	if path == "" {
		var err error
		if path, err = config.DefaultPresetPath(backend); err != nil {
			return nil, noop, fmt.Errorf("%w: %v", pandoccmd.ErrPresetStore, err)
		}
	}

	kv, err := s.env.OpenKV(backend, path)
	if err != nil {
		return nil, noop, fmt.Errorf("%w: %s store at %s: %w", pandoccmd.ErrPresetStore, backend, path, err)
	}
	s.log.WithField("backend", backend).WithField("path", path).Debug("preset store opened")

	closeStore := func() {
		if c, ok := kv.(io.Closer); ok {
			if err := c.Close(); err != nil {
				s.log.WithError(err).Warn("closing preset store")
			}
		}
	}
	return pandoccmd.NewPresetStore(kv), closeStore, nil
}

// loadPreset returns the named preset's values, with the available names
// as a hint when it does not exist.
func (s *session) loadPreset(name string) (pandoccmd.Values, error) {
	store, closeStore, err := s.presets()
	if err != nil {
		return nil, err
	}
	defer closeStore()

	values, ok, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		names, _ := store.List()
		return nil, fmt.Errorf("%w: %q%s", pandoccmd.ErrPresetNotFound, name, hints.ForPresetNotFound(names))
	}
	return values, nil
}

// snapshot layers defaults, config, preset and flag values for input and
// validates the result.
func (s *session) snapshot(presetName, input string, flagValues pandoccmd.Values) (pandoccmd.Snapshot, error) {
	values := s.configValues()
	if presetName != "" {
		presetValues, err := s.loadPreset(presetName)
		if err != nil {
			return pandoccmd.Snapshot{}, err
		}
		values = values.Merge(presetValues)
	}
	values = values.Merge(flagValues)

	capture := pandoccmd.CaptureNow(input, s.readSource(input))
	capture.Now = s.env.Now()
	return pandoccmd.NewSnapshot(values, capture)
}

// readSource returns the input text for mermaid detection. An unreadable
// input only means no fence is detected.
func (s *session) readSource(input string) string {
	if input == "" {
		return ""
	}
	data, err := os.ReadFile(input) // #nosec G304 -- input path is user-provided
	if err != nil {
		s.log.WithError(err).Debug("input not readable; skipping mermaid detection")
		return ""
	}
	return string(data)
}

// timeout resolves the conversion timeout: --timeout, then the environment
// and config file, then pandoccmd.DefaultTimeout.
func (s *session) timeout(flagValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: --timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, d)
		}
		return d, nil
	}

	d, err := s.cfg.Conversion.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return pandoccmd.DefaultTimeout, nil
	}
	return d, nil
}
