package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"tableflip.dev/hgrid/pkg/source"
)

// Config holds the settings shared by every command.
type Config struct {
	MinWidth    int    `json:"min_width"`
	MinHeight   int    `json:"min_height"`
	Padding     int    `json:"padding"`
	ChildrenKey string `json:"children_key"`
	LabelKey    string `json:"label_key"`
	IDKey       string `json:"id_key"`
	Format      string `json:"format"`
}

// Load reads .hgrid.yaml from $HGRID_CONFIG_PATH or the working directory and
// overlays HGRID_* environment variables. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("min_width", 4)
	v.SetDefault("min_height", 1)
	v.SetDefault("padding", 1)
	v.SetDefault("children_key", "children")
	v.SetDefault("label_key", "name")
	v.SetDefault("id_key", "")
	v.SetDefault("format", string(source.FormatAuto))
	v.SetConfigName(".hgrid") // .yaml is implicit
	v.SetEnvPrefix("HGRID")
	v.AutomaticEnv()

	if override := os.Getenv("HGRID_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	return &Config{
		MinWidth:    v.GetInt("min_width"),
		MinHeight:   v.GetInt("min_height"),
		Padding:     v.GetInt("padding"),
		ChildrenKey: v.GetString("children_key"),
		LabelKey:    v.GetString("label_key"),
		IDKey:       v.GetString("id_key"),
		Format:      v.GetString("format"),
	}, nil
}

// SourceOptions converts the source related settings.
func (c *Config) SourceOptions() (source.Options, error) {
	format, err := source.ParseFormat(c.Format)
	if err != nil {
		return source.Options{}, err
	}
	return source.Options{
		Format:      format,
		ChildrenKey: c.ChildrenKey,
		LabelKey:    c.LabelKey,
		IDKey:       c.IDKey,
	}, nil
}
