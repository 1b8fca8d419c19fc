package configs

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = `ctow.yaml`
	// DefaultConfigPath is the config folder used when none is given.
	DefaultConfigPath = `~/.ctow`

	defaultWorkspace = `ctow_workspace`
	defaultUI        = UIPrompt
	defaultPort      = 8002
	defaultLogLevel  = "info"
)

// UI names for interactive mode.
const (
	UIPrompt = "prompt"
	UISimple = "simple"
	UIRest   = "rest"
	UIWeb    = "web"
)

var (
	errConfigPathNotExist = errors.New("config path not exist")
	errConfigPathIsFile   = errors.New("config path is file")
)

// Config stores ctow config items.
type Config struct {
	// configuration folder path, default ~/.ctow
	ConfigPath string `yaml:"-"`
	// history & debug log path, default $PWD/ctow_workspace
	WorkspacePath string `yaml:"WorkspacePath"`
	// result format for converted commands: default, plain, json or table
	OutputFormat string `yaml:"OutputFormat"`
	// interactive front-end: prompt, simple, rest or web
	UI string `yaml:"UI"`
	// listening port for rest mode
	Port     int    `yaml:"Port"`
	LogLevel string `yaml:"LogLevel"`

	sources map[string]ConfigSource
}

func (c *Config) load() error {
	err := c.checkConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Open(c.getConfigPath())
	if os.IsNotExist(err) {
		return errConfigPathNotExist
	}
	if err != nil {
		return err
	}
	defer f.Close()
	bs, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(bs, c); err != nil {
		return errors.Wrapf(err, "failed to parse %s", c.getConfigPath())
	}
	c.fillDefault()
	return nil
}

func (c *Config) getConfigPath() string {
	return path.Join(c.ConfigPath, configFileName)
}

// checkConfigPath exists and is a directory.
func (c *Config) checkConfigPath() error {
	info, err := os.Stat(c.ConfigPath)
	if err != nil {
		// not exist, return specified type to handle
		if os.IsNotExist(err) {
			return errConfigPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w(%s)", errConfigPathIsFile, c.ConfigPath)
	}

	return nil
}

// fillDefault sets default values for items missing from the file.
func (c *Config) fillDefault() {
	if c.WorkspacePath == "" {
		c.WorkspacePath = defaultWorkspace
	}
	if c.UI == "" {
		c.UI = defaultUI
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

func (c *Config) createDefault() error {
	c.fillDefault()

	err := os.MkdirAll(c.ConfigPath, os.ModePerm)
	if err != nil {
		return err
	}

	file, err := os.Create(c.getConfigPath())
	if err != nil {
		return err
	}
	defer file.Close()

	bs, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	_, err = file.Write(bs)
	return err
}

// SetConfig sets key to value in the named config source.
func (c *Config) SetConfig(source, key, value string) error {
	if key == "" {
		return errors.New("config key is empty")
	}
	s, ok := c.sources[source]
	if !ok {
		return errors.Newf("config source %q not found", source)
	}
	return s.Set(key, value)
}

// GetConfig reads key from the named config source.
func (c *Config) GetConfig(source, key string) (string, error) {
	s, ok := c.sources[source]
	if !ok {
		return "", errors.Newf("config source %q not found", source)
	}
	return s.Get(key)
}

// NewConfig loads the config file under configPath, creating it with
// default values when the folder does not exist yet. A usable Config is
// returned even when err is not nil.
func NewConfig(configPath string) (*Config, error) {
	expanded, err := homedir.Expand(configPath)
	if err != nil {
		expanded = configPath
	}
	config := &Config{
		ConfigPath: expanded,
		sources: map[string]ConfigSource{
			"env": &envConfigSource{},
		},
	}
	err = config.load()
	// config path not exist, may first time to run
	if errors.Is(err, errConfigPathNotExist) {
		return config, config.createDefault()
	}
	if err != nil {
		config.fillDefault()
	}

	return config, err
}
