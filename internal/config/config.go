package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aliasync/aliasync/internal/branding"
	"github.com/aliasync/aliasync/internal/schema"
	"github.com/aliasync/aliasync/internal/scanner"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Keys.
const (
	KeySrcDir          = "src_dir"
	KeyPrefix          = "prefix"
	KeyExcludeDirs     = "exclude_dirs"
	KeyMinDepth        = "min_depth"
	KeyMaxDepth        = "max_depth"
	KeyWildcardSubdirs = "wildcard_subdirs"
	KeyTools           = "tools"
	KeyHelperFile      = "helper_file"
	KeyDebounce        = "debounce"
)

// ErrUnknownKey is returned by Set for keys outside Keys().
var ErrUnknownKey = errors.New("unknown config key")

const DefaultDebounce = time.Second

var defaults = map[string]any{
	KeySrcDir:          scanner.DefaultSrcDir,
	KeyPrefix:          scanner.DefaultPrefix,
	KeyExcludeDirs:     scanner.DefaultExcludeDirs,
	KeyMinDepth:        0,
	KeyMaxDepth:        0,
	KeyWildcardSubdirs: false,
	KeyTools:           []string{},
	KeyHelperFile:      branding.HelperFile(),
	KeyDebounce:        DefaultDebounce.String(),
}

// Keys returns every supported key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings is the resolved configuration.
type Settings struct {
	SrcDir          string        `json:"src_dir" yaml:"src_dir"`
	Prefix          string        `json:"prefix" yaml:"prefix"`
	ExcludeDirs     []string      `json:"exclude_dirs" yaml:"exclude_dirs"`
	MinDepth        int           `json:"min_depth" yaml:"min_depth"`
	MaxDepth        int           `json:"max_depth" yaml:"max_depth"`
	WildcardSubdirs bool          `json:"wildcard_subdirs" yaml:"wildcard_subdirs"`
	Tools           []string      `json:"tools" yaml:"tools"`
	HelperFile      string        `json:"helper_file" yaml:"helper_file"`
	Debounce        time.Duration `json:"debounce" yaml:"debounce"`
}

// Store resolves settings for one project root.
type Store struct {
	v    *viper.Viper
	path string
}

// FilePath returns the config file location for root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile())
}

// Load initializes a Store for root. A missing config file is not an error.
// Variables from root/.env are added to the environment first without
// overriding ones already set.
func Load(root string) (*Store, error) {
	_ = godotenv.Load(filepath.Join(root, ".env"))

	s := &Store{v: viper.New(), path: FilePath(root)}
	for k, v := range defaults {
		s.v.SetDefault(k, v)
	}
	s.v.SetConfigFile(s.path)
	s.v.SetConfigType(fileType)
	s.v.SetEnvPrefix(branding.EnvPrefix())
	s.v.AutomaticEnv()

	if _, err := os.Stat(s.path); err == nil {
		if err := s.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", s.path, err)
		}
	}
	return s, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// BindFlag lets an explicitly set command-line flag override key.
func (s *Store) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := s.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding flag %s: %w", flag.Name, err)
	}
	return nil
}

// Get returns a config value by key as a string. Lists are comma separated.
func (s *Store) Get(key string) string {
	if _, isList := defaults[key].([]string); isList {
		return strings.Join(s.v.GetStringSlice(key), ",")
	}
	return s.v.GetString(key)
}

// Settings returns the resolved configuration.
func (s *Store) Settings() Settings {
	debounce := s.v.GetDuration(KeyDebounce)
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return Settings{
		SrcDir:          s.v.GetString(KeySrcDir),
		Prefix:          s.v.GetString(KeyPrefix),
		ExcludeDirs:     s.v.GetStringSlice(KeyExcludeDirs),
		MinDepth:        s.v.GetInt(KeyMinDepth),
		MaxDepth:        s.v.GetInt(KeyMaxDepth),
		WildcardSubdirs: s.v.GetBool(KeyWildcardSubdirs),
		Tools:           s.v.GetStringSlice(KeyTools),
		HelperFile:      s.v.GetString(KeyHelperFile),
		Debounce:        debounce,
	}
}

// Set writes key=value to the project config file. Only keys already in the
// file and the new one are written; defaults and environment values are not
// persisted.
func (s *Store) Set(key, value string) error {
	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(s.path)
	file.SetConfigType(fileType)
	if _, err := os.Stat(s.path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", s.path, err)
		}
	}
	file.Set(key, typed)

	if err := file.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	s.v.Set(key, typed)
	return nil
}

// Validate checks the config file against the embedded schema. A missing file
// is valid.
func (s *Store) Validate() (*schema.Result, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &schema.Result{Valid: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", s.path, err)
	}
	return schema.ValidateConfig(data)
}

func parseValue(key, value string) (any, error) {
	def, ok := defaults[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	switch def.(type) {
	case []string:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	case int:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	}

	if key == KeyDebounce {
		if _, err := time.ParseDuration(value); err != nil {
			return nil, fmt.Errorf("%s must be a duration such as 500ms, got %q", key, value)
		}
	}
	return value, nil
}
