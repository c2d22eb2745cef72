package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/opsem-dev/br/cas"
	"github.com/opsem-dev/br/interp"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Run    RunConfig    `toml:"run" yaml:"run"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

type RunConfig struct {
	MaxSteps       int  `toml:"max_steps" yaml:"max_steps"`
	DetectCycles   bool `toml:"detect_cycles" yaml:"detect_cycles"`
	CycleCacheSize int  `toml:"cycle_cache_size" yaml:"cycle_cache_size"`
}

type OutputConfig struct {
	Color bool `toml:"color" yaml:"color"`
	Stats bool `toml:"stats" yaml:"stats"`
}

func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			MaxSteps:       interp.DefaultMaxSteps,
			CycleCacheSize: cas.DefaultCacheSize,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

func (c *Config) Validate() error {
	if c.Run.MaxSteps <= 0 {
		return fmt.Errorf("run.max_steps must be positive, got %d", c.Run.MaxSteps)
	}
	if c.Run.CycleCacheSize < 0 {
		return fmt.Errorf("run.cycle_cache_size must not be negative, got %d", c.Run.CycleCacheSize)
	}
	return nil
}

func parseTOML(r io.Reader) (*Config, error) {
	out := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(out)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return out, out.Validate()
}

func parseYAML(r io.Reader) (*Config, error) {
	out := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, out.Validate()
}

// LoadConfigFromFile reads a .toml, .yaml or .yml file on top of the defaults.
func LoadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cfg, err = parseTOML(f)
	case ".yaml", ".yml":
		cfg, err = parseYAML(f)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
