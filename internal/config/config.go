package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SeqDirName = "seq"
	EnvFile    = ".env"
)

// Flag names whose explicit values take precedence over the environment and config file.
const (
	FlagWorkDir = "workdir"
	FlagPrefix  = "prefix"
	FlagSingle  = "single"
	FlagVerbose = "verbose"
)

type Config struct {
	SeqPath    string
	Samples    []string
	WorkDir    string
	Prefix     string
	SingleEnd  bool
	DryRun     bool
	Verbose    bool
	TUI        bool
	ConfigFile string
	EnvFile    string
}

// File is the optional YAML configuration file.
type File struct {
	WorkDir   string  `yaml:"workdir"`
	Prefix    *string `yaml:"prefix"`
	SingleEnd *bool   `yaml:"single_end"`
	Verbose   *bool   `yaml:"verbose"`
}

// Paired reports whether samples are expected to have two read files.
func (c Config) Paired() bool {
	return !c.SingleEnd
}

// DestDir is the directory FASTQ files are copied into.
func (c Config) DestDir() string {
	return filepath.Join(c.WorkDir, SeqDirName)
}

func (c Config) RegistryPath() string {
	return filepath.Join(c.WorkDir, "samples.txt")
}

// Resolve layers the environment (after loading the .env file) and the YAML
// config file beneath flags that were explicitly set, then expands the sample
// list and validates the result.
func Resolve(cfg Config, changed func(flag string) bool) (Config, error) {
	if changed == nil {
		changed = func(string) bool { return false }
	}

	envFile := cfg.EnvFile
	if envFile == "" {
		envFile = EnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = envOrEmpty("FQ_CONFIG")
	}
	var file File
	if cfg.ConfigFile != "" {
		loaded, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	if !changed(FlagWorkDir) {
		if env := envOrEmpty("FQ_WORKDIR"); env != "" {
			cfg.WorkDir = env
		} else if file.WorkDir != "" {
			cfg.WorkDir = file.WorkDir
		}
	}
	if !changed(FlagPrefix) {
		if env, ok := os.LookupEnv("FQ_PREFIX"); ok {
			cfg.Prefix = strings.TrimSpace(env)
		} else if file.Prefix != nil {
			cfg.Prefix = *file.Prefix
		}
	}
	if !changed(FlagSingle) {
		if envOrEmpty("FQ_SINGLE") != "" {
			cfg.SingleEnd = envTruthy("FQ_SINGLE")
		} else if file.SingleEnd != nil {
			cfg.SingleEnd = *file.SingleEnd
		}
	}
	if !changed(FlagVerbose) {
		if envOrEmpty("FQ_VERBOSE") != "" {
			cfg.Verbose = envTruthy("FQ_VERBOSE")
		} else if file.Verbose != nil {
			cfg.Verbose = *file.Verbose
		}
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}

	samples, err := ExpandSamples(cfg.Samples)
	if err != nil {
		return Config{}, err
	}
	cfg.Samples = samples

	if cfg.SeqPath == "" {
		return Config{}, errors.New("sequence path is required")
	}
	if len(cfg.Samples) == 0 {
		return Config{}, errors.New("at least one sample name is required")
	}
	if strings.ContainsAny(cfg.Prefix, `/\`) {
		return Config{}, errors.New("prefix must not contain path separators")
	}
	return cfg, nil
}

func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

// ExpandSamples reads sample names from a file, one per line, when args is a
// single path to a regular file or FIFO. Otherwise args are the names.
func ExpandSamples(args []string) ([]string, error) {
	if len(args) != 1 {
		return args, nil
	}
	info, err := os.Stat(args[0])
	if err != nil || !(info.Mode().IsRegular() || info.Mode()&fs.ModeNamedPipe != 0) {
		return args, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read sample list: %w", err)
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
