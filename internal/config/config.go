package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/weft/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "weft.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "weft.yaml"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultApp is the demo app served and rendered by default.
	DefaultApp = "app"

	// DefaultFPS is the frame rate of the real-time scheduler.
	DefaultFPS = 60

	// DefaultYieldThreshold is the remaining frame time below which the work
	// loop yields.
	DefaultYieldThreshold = "1ms"

	// DefaultNamespace is the Prometheus namespace.
	DefaultNamespace = "weft"

	// DefaultTracerName is the OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/weft"
)

// Snapshot backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendS3     = "s3"
)

// Config represents the complete weft configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Scheduler contains frame scheduling configuration.
	Scheduler SchedulerConfig `json:"scheduler,omitempty" yaml:"scheduler,omitempty"`

	// Dev contains preview server configuration.
	Dev DevConfig `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Snapshot contains commit snapshot storage configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SchedulerConfig contains frame loop settings.
type SchedulerConfig struct {
	// FPS is the number of idle opportunities per second.
	FPS int `json:"fps,omitempty" yaml:"fps,omitempty"`

	// YieldThreshold is a duration string (e.g., "1ms").
	YieldThreshold string `json:"yieldThreshold,omitempty" yaml:"yieldThreshold,omitempty"`
}

// DevConfig contains preview server settings.
type DevConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to run the preview server on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// App is the demo app to mount.
	App string `json:"app,omitempty" yaml:"app,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// SnapshotConfig selects where commit snapshots are stored.
type SnapshotConfig struct {
	// Backend is one of "none", "memory", "bolt" or "s3".
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Path is the bbolt database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Bucket, Prefix and Region configure the S3 backend.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (for MinIO and similar).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			FPS:            DefaultFPS,
			YieldThreshold: DefaultYieldThreshold,
		},
		Dev: DevConfig{
			Host: DefaultHost,
			Port: DefaultPort,
			App:  DefaultApp,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Snapshot: SnapshotConfig{
			Backend: BackendNone,
			Path:    "weft-snapshots.db",
			Prefix:  "snapshots/",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory. weft.json takes
// precedence over weft.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "weft.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No weft.json or weft.yaml found in " + dir).
		WithSuggestion("Create weft.json or weft.yaml in the project root")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No configuration found at " + path)
		}
		return nil, errors.New("E120").WithLocation(path, 0).Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithLocation(path, yamlErrorLine(err)).
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithLocation(path, 0).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// yamlErrorLine extracts the line from "yaml: line N: ..." messages.
func yamlErrorLine(err error) int {
	msg := err.Error()
	const marker = "line "
	i := strings.Index(msg, marker)
	if i < 0 {
		return 0
	}
	rest := msg[i+len(marker):]
	end := strings.IndexByte(rest, ':')
	if end < 0 {
		return 0
	}
	n, convErr := strconv.Atoi(rest[:end])
	if convErr != nil {
		return 0
	}
	return n
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML when the
// extension says so and as JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Scheduler.FPS == 0 {
		c.Scheduler.FPS = d.Scheduler.FPS
	}
	if c.Scheduler.YieldThreshold == "" {
		c.Scheduler.YieldThreshold = d.Scheduler.YieldThreshold
	}

	if c.Dev.Host == "" {
		c.Dev.Host = d.Dev.Host
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = d.Dev.Port
	}
	if c.Dev.App == "" {
		c.Dev.App = d.Dev.App
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}

	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = d.Snapshot.Backend
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = d.Snapshot.Path
	}
	if c.Snapshot.Prefix == "" {
		c.Snapshot.Prefix = d.Snapshot.Prefix
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E122").
			WithDetail("dev.port must be between 0 and 65535")
	}
	if c.Scheduler.FPS <= 0 || c.Scheduler.FPS > 1000 {
		return errors.New("E122").
			WithDetail("scheduler.fps must be between 1 and 1000")
	}
	if d, err := time.ParseDuration(c.Scheduler.YieldThreshold); err != nil || d < 0 {
		return errors.New("E122").
			WithDetail("scheduler.yieldThreshold must be a non-negative duration such as \"1ms\"")
	}
	switch c.Snapshot.Backend {
	case BackendNone, BackendMemory:
	case BackendBolt:
		if c.Snapshot.Path == "" {
			return errors.New("E122").WithDetail("snapshot.path is required for the bolt backend")
		}
	case BackendS3:
		if c.Snapshot.Bucket == "" {
			return errors.New("E122").WithDetail("snapshot.bucket is required for the s3 backend")
		}
	default:
		return errors.New("E122").
			WithDetail("snapshot.backend must be one of none, memory, bolt, s3").
			WithSuggestion("Got " + strconv.Quote(c.Snapshot.Backend))
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("E122").
			WithDetail("log.level must be one of debug, info, warn, error")
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// FrameInterval returns the duration of one scheduler frame.
func (c *Config) FrameInterval() time.Duration {
	fps := c.Scheduler.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// YieldThreshold returns the parsed yield threshold, falling back to the
// default when the value does not parse.
func (c *Config) YieldThreshold() time.Duration {
	d, err := time.ParseDuration(c.Scheduler.YieldThreshold)
	if err != nil {
		return time.Millisecond
	}
	return d
}

// LogLevel returns the slog level for Log.Level. Unknown levels map to info.
func (c *Config) LogLevel() slog.Level {
	if l, ok := logLevels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// DevAddress returns the address string for the preview server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the preview server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// SnapshotPath returns the bolt database path, resolved against the config
// directory when relative.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Path) || c.Dir() == "" {
		return c.Snapshot.Path
	}
	return filepath.Join(c.Dir(), c.Snapshot.Path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "weft.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a weft config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No weft.json or weft.yaml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or one of its parents. When none is found the defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "E141") {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}
