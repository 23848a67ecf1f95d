package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"

	"github.com/Paintersrp/dictcheck/internal/constants"
)

type CommandTemplate struct {
	Exec    string   `yaml:"exec"    json:"exec"`
	Args    []string `yaml:"args"    json:"args"`
	Wait    *bool    `yaml:"wait"    json:"wait"`
	Silence *bool    `yaml:"silence" json:"silence"`
}

type S3Config struct {
	Region          string `yaml:"region"            json:"region"`
	Endpoint        string `yaml:"endpoint"          json:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"     json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"    json:"use_path_style"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3" json:"s3"`
}

// Duration is a time.Duration that persists as a human readable string
// ("5s", "100ms"). Bare integers are read as milliseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	parsed, err := ParseDuration(value.Value)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// ParseDuration accepts Go duration syntax or a plain millisecond count.
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("invalid duration %q: must not be negative", raw)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", raw)
	}
	return d, nil
}

// Settings is the flat record the check command consumes. The first four
// fields are edited from the settings panel; the rest tune how lookups are
// resolved and how the fallback hotkey is delivered.
type Settings struct {
	FilePath        string                     `yaml:"file_path"        json:"file_path"`
	PrefixSymbol    string                     `yaml:"prefix_symbol"    json:"prefix_symbol"`
	SuffixSymbol    string                     `yaml:"suffix_symbol"    json:"suffix_symbol"`
	NotFoundHotkey  string                     `yaml:"not_found_hotkey" json:"not_found_hotkey"`
	VaultDir        string                     `yaml:"vaultdir"         json:"vault_dir"`
	NoticeDuration  Duration                   `yaml:"notice_duration"  json:"notice_duration"`
	UnregisterDelay Duration                   `yaml:"unregister_delay" json:"unregister_delay"`
	DispatchMode    string                     `yaml:"dispatch_mode"    json:"dispatch_mode"`
	Bindings        map[string]CommandTemplate `yaml:"bindings"         json:"bindings"`
	Storage         StorageConfig              `yaml:"storage"          json:"storage"`
}

type Config struct {
	Settings `yaml:",inline"`

	path string `yaml:"-"`
}

const (
	DispatchAuto      = "auto"
	DispatchCommand   = "command"
	DispatchSynthetic = "synthetic"
	DispatchNone      = "none"
)

var ValidDispatchModes = map[string]bool{
	DispatchAuto:      true,
	DispatchCommand:   true,
	DispatchSynthetic: true,
	DispatchNone:      true,
}

var DispatchModeNames = []string{DispatchAuto, DispatchCommand, DispatchSynthetic, DispatchNone}

func ValidateDispatchMode(mode string) error {
	if ValidDispatchModes[mode] {
		return nil
	}
	return fmt.Errorf(
		"invalid dispatch mode: %q. Please choose from 'auto', 'command', 'synthetic', or 'none'",
		mode,
	)
}

// DefaultSettings returns the record every loaded file is merged over.
func DefaultSettings() Settings {
	return Settings{
		NoticeDuration:  Duration{constants.DefaultNoticeDuration},
		UnregisterDelay: Duration{constants.DefaultUnregisterDelay},
		DispatchMode:    DispatchAuto,
		Bindings:        make(map[string]CommandTemplate),
	}
}

func (s *Settings) ensureDefaults() {
	if s.NoticeDuration.Duration <= 0 {
		s.NoticeDuration = Duration{constants.DefaultNoticeDuration}
	}
	if s.UnregisterDelay.Duration <= 0 {
		s.UnregisterDelay = Duration{constants.DefaultUnregisterDelay}
	}
	if s.DispatchMode == "" {
		s.DispatchMode = DispatchAuto
	}
	if s.Bindings == nil {
		s.Bindings = make(map[string]CommandTemplate)
	}
}

func Load(home string) (*Config, error) {
	return LoadFile(GetConfigPath(home))
}

// LoadFile reads the settings at path, merging them over DefaultSettings.
// An empty file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Settings: DefaultSettings(), path: path}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.ensureDefaults()
	if err := ValidateDispatchMode(cfg.DispatchMode); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

// New returns an unsaved config bound to path.
func New(path string) *Config {
	return &Config{Settings: DefaultSettings(), path: path}
}

func (cfg *Config) Path() string {
	if cfg.path != "" {
		return cfg.path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) syncViper() {
	viper.Set("file_path", cfg.FilePath)
	viper.Set("prefix_symbol", cfg.PrefixSymbol)
	viper.Set("suffix_symbol", cfg.SuffixSymbol)
	viper.Set("not_found_hotkey", cfg.NotFoundHotkey)
	viper.Set("vaultdir", cfg.VaultDir)
	viper.Set("notice_duration", cfg.NoticeDuration.Duration)
	viper.Set("unregister_delay", cfg.UnregisterDelay.Duration)
	viper.Set("dispatch_mode", cfg.DispatchMode)
}

func (cfg *Config) Save() error {
	cfg.ensureDefaults()
	if err := ValidateDispatchMode(cfg.DispatchMode); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.Path()
	if configPath == "" {
		return fmt.Errorf("no config path available")
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Field keys in the order the settings panel lists them.
const (
	FieldFilePath        = "file_path"
	FieldPrefixSymbol    = "prefix_symbol"
	FieldSuffixSymbol    = "suffix_symbol"
	FieldNotFoundHotkey  = "not_found_hotkey"
	FieldVaultDir        = "vaultdir"
	FieldNoticeDuration  = "notice_duration"
	FieldUnregisterDelay = "unregister_delay"
	FieldDispatchMode    = "dispatch_mode"
)

var Fields = []string{
	FieldFilePath,
	FieldPrefixSymbol,
	FieldSuffixSymbol,
	FieldNotFoundHotkey,
	FieldVaultDir,
	FieldNoticeDuration,
	FieldUnregisterDelay,
	FieldDispatchMode,
}

var fieldAliases = map[string]string{
	"filepath":        FieldFilePath,
	"file":            FieldFilePath,
	"path":            FieldFilePath,
	"prefixsymbol":    FieldPrefixSymbol,
	"prefix":          FieldPrefixSymbol,
	"suffixsymbol":    FieldSuffixSymbol,
	"suffix":          FieldSuffixSymbol,
	"notfoundhotkey":  FieldNotFoundHotkey,
	"hotkey":          FieldNotFoundHotkey,
	"vaultdir":        FieldVaultDir,
	"vault":           FieldVaultDir,
	"noticeduration":  FieldNoticeDuration,
	"unregisterdelay": FieldUnregisterDelay,
	"dispatchmode":    FieldDispatchMode,
	"dispatch":        FieldDispatchMode,
}

// CanonicalField maps user spellings ("filePath", "file-path", "prefix") to a
// field key.
func CanonicalField(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	field, ok := fieldAliases[key]
	return field, ok
}

func (cfg *Config) Get(field string) (string, error) {
	key, ok := CanonicalField(field)
	if !ok {
		return "", &UnknownFieldError{Field: field}
	}

	switch key {
	case FieldFilePath:
		return cfg.FilePath, nil
	case FieldPrefixSymbol:
		return cfg.PrefixSymbol, nil
	case FieldSuffixSymbol:
		return cfg.SuffixSymbol, nil
	case FieldNotFoundHotkey:
		return cfg.NotFoundHotkey, nil
	case FieldVaultDir:
		return cfg.VaultDir, nil
	case FieldNoticeDuration:
		return cfg.NoticeDuration.String(), nil
	case FieldUnregisterDelay:
		return cfg.UnregisterDelay.String(), nil
	default:
		return cfg.DispatchMode, nil
	}
}

// Set updates one field and saves immediately. Text fields are stored
// verbatim, whitespace included, since prefixes and suffixes may need it.
func (cfg *Config) Set(field, value string) error {
	key, ok := CanonicalField(field)
	if !ok {
		return &UnknownFieldError{Field: field}
	}

	switch key {
	case FieldFilePath:
		cfg.FilePath = value
	case FieldPrefixSymbol:
		cfg.PrefixSymbol = value
	case FieldSuffixSymbol:
		cfg.SuffixSymbol = value
	case FieldNotFoundHotkey:
		cfg.NotFoundHotkey = strings.TrimSpace(value)
	case FieldVaultDir:
		cfg.VaultDir = strings.TrimSpace(value)
	case FieldNoticeDuration, FieldUnregisterDelay:
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		if key == FieldNoticeDuration {
			cfg.NoticeDuration = Duration{d}
		} else {
			cfg.UnregisterDelay = Duration{d}
		}
	case FieldDispatchMode:
		mode := strings.ToLower(strings.TrimSpace(value))
		if err := ValidateDispatchMode(mode); err != nil {
			return err
		}
		cfg.DispatchMode = mode
	}

	return cfg.Save()
}
