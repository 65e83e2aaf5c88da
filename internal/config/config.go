package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Vector   VectorConfig  `mapstructure:"vector"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	Stats    StatsConfig   `mapstructure:"stats"`
	LogLevel string        `mapstructure:"log_level"`
}

type VectorConfig struct {
	Length int     `mapstructure:"length"`
	Alpha  float64 `mapstructure:"alpha"`
}

type RuntimeConfig struct {
	Workers int    `mapstructure:"workers"`
	Kernel  string `mapstructure:"kernel"`
}

type StatsConfig struct {
	Path string `mapstructure:"path"`
	CPUs int    `mapstructure:"cpus"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Vector: VectorConfig{
			Length: 10000,
			Alpha:  2.0,
		},
		Runtime: RuntimeConfig{
			Workers: 8,
			Kernel:  KernelGeneric,
		},
		Stats: StatsConfig{
			Path: "m5out/stats.txt",
			CPUs: 2,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int("vector-length", defaults.Vector.Length, "Number of vector elements (N)")
	fs.Float64("vector-alpha", defaults.Vector.Alpha, "Scalar multiplier a in y = a*x + y")
	fs.Int("runtime-workers", defaults.Runtime.Workers, "Number of worker goroutines (T)")
	fs.Int("workers", defaults.Runtime.Workers, "Number of worker goroutines (alias for --runtime-workers)")
	fs.String("runtime-kernel", defaults.Runtime.Kernel, "Elementwise kernel: generic|vecmath")
	fs.String("kernel", defaults.Runtime.Kernel, "Elementwise kernel (alias for --runtime-kernel)")
	fs.String("stats-path", defaults.Stats.Path, "Path to a gem5 stats.txt file")
	fs.Int("stats-cpus", defaults.Stats.CPUs, "Number of simulated CPUs in the gem5 stats file")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("DAXPY")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("daxpy")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// Unknown kernel names are kept verbatim so Validate and doctor can report them.
	if kernel, err := NormalizeKernel(cfg.Runtime.Kernel); err == nil {
		cfg.Runtime.Kernel = kernel
	}

	return cfg, nil
}

// Validate reports the first setting that would prevent a DAXPY run.
// Settings read only by the stats tool are checked there.
func (c Config) Validate() error {
	if c.Vector.Length < 1 {
		return fmt.Errorf("vector.length must be at least 1, got %d", c.Vector.Length)
	}
	if c.Runtime.Workers < 1 {
		return fmt.Errorf("runtime.workers must be at least 1, got %d", c.Runtime.Workers)
	}
	if _, err := NormalizeKernel(c.Runtime.Kernel); err != nil {
		return err
	}
	return nil
}

// flagKeys maps config keys to the flags that may set them. When several
// flags map to one key, the first one the user changed wins.
var flagKeys = []struct {
	key   string
	flags []string
}{
	{"vector.length", []string{"vector-length"}},
	{"vector.alpha", []string{"vector-alpha"}},
	{"runtime.workers", []string{"runtime-workers", "workers"}},
	{"runtime.kernel", []string{"runtime-kernel", "kernel"}},
	{"stats.path", []string{"stats-path"}},
	{"stats.cpus", []string{"stats-cpus"}},
	{"log_level", []string{"log-level"}},
}

// bindFlags binds each config key to its flag. Flags are bound to the nested
// keys directly rather than through aliases so that config file values still
// unmarshal when the flag was left at its default.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		var chosen *pflag.Flag

		for _, name := range fk.flags {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if chosen == nil || (f.Changed && !chosen.Changed) {
				chosen = f
			}
		}

		if chosen == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, chosen); err != nil {
			return fmt.Errorf("bind %s: %w", fk.key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("vector.length", c.Vector.Length)
	v.SetDefault("vector.alpha", c.Vector.Alpha)
	v.SetDefault("runtime.workers", c.Runtime.Workers)
	v.SetDefault("runtime.kernel", c.Runtime.Kernel)
	v.SetDefault("stats.path", c.Stats.Path)
	v.SetDefault("stats.cpus", c.Stats.CPUs)
	v.SetDefault("log_level", c.LogLevel)
}
