package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kio/ccleanplus/internal/core"
)

// Settings is the user configuration read from ccp.yaml and CCP_* variables.
type Settings struct {
	Clean   CleanSettings   `mapstructure:"clean"`
	BigFile BigFileSettings `mapstructure:"bigfile"`
	Targets TargetSettings  `mapstructure:"targets"`
	Docs    DocsSettings    `mapstructure:"docs"`
	Log     LogSettings     `mapstructure:"log"`
}

// CleanSettings holds defaults for "ccp clean".
type CleanSettings struct {
	Permanent    bool `mapstructure:"permanent"`
	RestorePoint bool `mapstructure:"restore_point"`
	Parallel     int  `mapstructure:"parallel"`
}

// BigFileSettings holds defaults for "ccp bigfiles".
type BigFileSettings struct {
	Root       string   `mapstructure:"root"`
	MinSizeMB  int      `mapstructure:"min_size_mb"`
	MaxResults int      `mapstructure:"max_results"`
	Workers    int      `mapstructure:"workers"`
	Excludes   []string `mapstructure:"excludes"`
	Permanent  bool     `mapstructure:"permanent"`
}

// TargetSettings lets users add their own clean targets or hide built-ins.
type TargetSettings struct {
	Extra    []CleanTarget `mapstructure:"extra"`
	Disabled []string      `mapstructure:"disabled"`
}

// DocsSettings points at the documentation site sources.
type DocsSettings struct {
	Config  string `mapstructure:"config"`
	Dir     string `mapstructure:"dir"`
	Builder string `mapstructure:"builder"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Size limits accepted for the large-file scan.
const (
	MinSizeMBLow    = 50
	MinSizeMBHigh   = 10240
	MaxResultsLow   = 50
	MaxResultsHigh  = 2000
	maxWorkersLimit = 64
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("clean.permanent", true)
	v.SetDefault("clean.restore_point", false)
	v.SetDefault("clean.parallel", 4)
	v.SetDefault("bigfile.root", systemDrive())
	v.SetDefault("bigfile.min_size_mb", 500)
	v.SetDefault("bigfile.max_results", 200)
	v.SetDefault("bigfile.workers", 0)
	v.SetDefault("bigfile.excludes", DefaultExcludes())
	v.SetDefault("bigfile.permanent", true)
	v.SetDefault("targets.extra", []CleanTarget{})
	v.SetDefault("targets.disabled", []string{})
	v.SetDefault("docs.config", "")
	v.SetDefault("docs.dir", "docs")
	v.SetDefault("docs.builder", "npx vitepress build")
	v.SetDefault("log.level", "")
	v.SetDefault("log.json", false)
}

// Load reads settings from file (or the default search path when file is
// empty) and the environment. A missing default file is not an error.
func Load(file string) (Settings, string, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(SettingsDir())
		v.SetConfigName("ccp")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return Settings{}, "", fmt.Errorf("read settings: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, used, fmt.Errorf("decode settings: %w", err)
	}
	for i := range s.Targets.Extra {
		s.Targets.Extra[i].Path = expand(s.Targets.Extra[i].Path)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, used, err
	}
	return s, used, nil
}

// Validate checks value ranges and extra targets, reporting every problem.
func (s Settings) Validate() error {
	var result *multierror.Error
	b := s.BigFile
	if b.MinSizeMB < MinSizeMBLow || b.MinSizeMB > MinSizeMBHigh {
		result = multierror.Append(result, fmt.Errorf("bigfile.min_size_mb must be between %d and %d, got %d", MinSizeMBLow, MinSizeMBHigh, b.MinSizeMB))
	}
	if b.MaxResults < MaxResultsLow || b.MaxResults > MaxResultsHigh {
		result = multierror.Append(result, fmt.Errorf("bigfile.max_results must be between %d and %d, got %d", MaxResultsLow, MaxResultsHigh, b.MaxResults))
	}
	if b.Workers < 0 || b.Workers > maxWorkersLimit {
		result = multierror.Append(result, fmt.Errorf("bigfile.workers must be between 0 and %d, got %d", maxWorkersLimit, b.Workers))
	}
	if b.Root == "" {
		result = multierror.Append(result, errors.New("bigfile.root must not be empty"))
	}
	if s.Clean.Parallel < 1 {
		result = multierror.Append(result, fmt.Errorf("clean.parallel must be at least 1, got %d", s.Clean.Parallel))
	}
	if s.Log.Level != "" {
		if _, err := zerolog.ParseLevel(s.Log.Level); err != nil {
			result = multierror.Append(result, fmt.Errorf("log.level: %w", err))
		}
	}

	builtin := make(map[string]bool)
	for _, t := range GetCleanTargets() {
		builtin[strings.ToLower(t.Name)] = true
	}
	protected := GetNeverDeletePaths()
	for _, t := range s.Targets.Extra {
		if err := t.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if builtin[strings.ToLower(t.Name)] {
			result = multierror.Append(result, fmt.Errorf("extra target %q shadows a built-in target", t.Name))
		}
		if core.Guards(t.Path, protected) {
			result = multierror.Append(result, fmt.Errorf("extra target %q: %s is a drive root or holds a protected folder", t.Name, t.Path))
		}
	}
	return result.ErrorOrNil()
}

// CleanTargets returns built-in targets minus disabled ones, followed by extras.
func (s Settings) CleanTargets() []CleanTarget {
	disabled := make(map[string]bool, len(s.Targets.Disabled))
	for _, n := range s.Targets.Disabled {
		disabled[strings.ToLower(n)] = true
	}
	var out []CleanTarget
	for _, t := range GetCleanTargets() {
		if !disabled[strings.ToLower(t.Name)] {
			out = append(out, t)
		}
	}
	for _, t := range s.Targets.Extra {
		if t.Label == "" {
			t.Label = t.Name
		}
		out = append(out, t)
	}
	return out
}
