// Package config reads the mcsqa settings from the config file, the
// environment (MCSQA_ prefix, MCSQA_STORE_DRIVER for store.driver) and
// flags bound by the commands.
package config

import (
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverXLSX   = "xlsx"
	DriverSQLite = "sqlite"
	DriverRemote = "remote"
	DriverMemory = "memory"
)

const (
	// EnvPrefix is prepended to every environment variable.
	EnvPrefix = "MCSQA"

	// DefaultConfigName is the config file looked for in $HOME.
	DefaultConfigName = ".mcsqa"
)

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"apikey"`
}

type Config struct {
	Store StoreConfig `mapstructure:"store"`

	// Template is the region each record is copied from.
	Template string `mapstructure:"template"`

	// BlankKeywords replaces the default cell values read as "no measurement".
	BlankKeywords []string `mapstructure:"blank_keywords"`

	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers every key, which is also what lets an environment
// variable alone set a key when the config is unmarshalled.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DriverXLSX)
	v.SetDefault("store.path", "sqa-records.xlsx")
	v.SetDefault("store.url", "")
	v.SetDefault("store.apikey", "")
	v.SetDefault("template", "Template")
	v.SetDefault("blank_keywords", []string{})
	v.SetDefault("verbose", false)
}

// Load reads cfgFile, or $HOME/.mcsqa.yaml when cfgFile is empty, into v
// and returns the validated settings. A missing default config file is not
// an error, a missing cfgFile is.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", cfgFile)
		}
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "reading config")
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if c.Store.Path != "" {
		path, err := homedir.Expand(c.Store.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "expanding store.path %s", c.Store.Path)
		}
		c.Store.Path = path
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate reports every problem with the settings at once.
func (c *Config) Validate() error {
	var errs *multierror.Error

	switch c.Store.Driver {
	case DriverXLSX, DriverSQLite:
		if c.Store.Path == "" {
			errs = multierror.Append(errs, errors.Errorf("store.path is required for the %s driver", c.Store.Driver))
		}
	case DriverRemote:
		if u, err := url.Parse(c.Store.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = multierror.Append(errs, errors.Errorf("store.url '%s' is not a valid URL", c.Store.URL))
		}
	case DriverMemory:
	default:
		errs = multierror.Append(errs, errors.Errorf("unknown store.driver '%s'", c.Store.Driver))
	}

	if strings.TrimSpace(c.Template) == "" {
		errs = multierror.Append(errs, errors.New("template can't be blank"))
	}

	for _, keyword := range c.BlankKeywords {
		if strings.TrimSpace(keyword) == "" {
			errs = multierror.Append(errs, errors.New("blank_keywords can't contain an empty keyword"))
			break
		}
	}

	return errs.ErrorOrNil()
}
