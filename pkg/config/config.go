// Package config loads gridsheet settings from a .gridsheet yaml file and
// GRIDSHEET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/gridsheet/pkg/dataset"
)

// Config is the resolved configuration.
type Config struct {
	ColumnWidth  int           `json:"column_width"`
	RowHeight    int           `json:"row_height"`
	HeaderHeight int           `json:"header_height"`
	BlankMargin  int           `json:"blank_margin"`
	WheelStep    int           `json:"wheel_step"`
	Throttle     time.Duration `json:"throttle"`
	DoubleClick  time.Duration `json:"double_click"`
	ClipStore    string        `json:"clip_store"`
	ClipLimit    int           `json:"clip_limit"`
	LogFile      string        `json:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ColumnWidth:  12,
		RowHeight:    1,
		HeaderHeight: 1,
		BlankMargin:  2,
		WheelStep:    3,
		Throttle:     100 * time.Millisecond,
		DoubleClick:  400 * time.Millisecond,
		ClipStore:    "~/.gridsheet/clips",
		ClipLimit:    50,
	}
}

// DataSetOptions projects the geometry settings onto dataset options.
func (c Config) DataSetOptions() dataset.Options {
	return dataset.Options{
		ColumnWidth: c.ColumnWidth,
		RowHeight:   c.RowHeight,
		BlankMargin: c.BlankMargin,
	}
}

// Load reads .gridsheet from $GRIDSHEET_CONFIG_PATH, the working directory
// and the home directory, in that order. A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("column_width", d.ColumnWidth)
	v.SetDefault("row_height", d.RowHeight)
	v.SetDefault("header_height", d.HeaderHeight)
	v.SetDefault("blank_margin", d.BlankMargin)
	v.SetDefault("wheel_step", d.WheelStep)
	v.SetDefault("throttle", d.Throttle)
	v.SetDefault("double_click", d.DoubleClick)
	v.SetDefault("clip_store", d.ClipStore)
	v.SetDefault("clip_limit", d.ClipLimit)
	v.SetDefault("log_file", d.LogFile)

	v.SetConfigName(".gridsheet") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRIDSHEET")
	v.AutomaticEnv()

	if override := os.Getenv("GRIDSHEET_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	c := Config{
		ColumnWidth:  v.GetInt("column_width"),
		RowHeight:    v.GetInt("row_height"),
		HeaderHeight: v.GetInt("header_height"),
		BlankMargin:  v.GetInt("blank_margin"),
		WheelStep:    v.GetInt("wheel_step"),
		Throttle:     v.GetDuration("throttle"),
		DoubleClick:  v.GetDuration("double_click"),
		ClipStore:    v.GetString("clip_store"),
		ClipLimit:    v.GetInt("clip_limit"),
		LogFile:      v.GetString("log_file"),
	}
	return c.normalize()
}

func (c Config) normalize() (Config, error) {
	d := Default()
	if c.ColumnWidth <= 1 {
		c.ColumnWidth = d.ColumnWidth
	}
	if c.RowHeight <= 0 {
		c.RowHeight = d.RowHeight
	}
	if c.HeaderHeight <= 0 {
		c.HeaderHeight = d.HeaderHeight
	}
	if c.BlankMargin < 0 {
		c.BlankMargin = 0
	}
	if c.WheelStep <= 0 {
		c.WheelStep = d.WheelStep
	}
	if c.Throttle < 0 {
		c.Throttle = 0
	}
	if c.DoubleClick <= 0 {
		c.DoubleClick = d.DoubleClick
	}
	if c.ClipLimit <= 0 {
		c.ClipLimit = d.ClipLimit
	}

	var err error
	if c.ClipStore, err = homedir.Expand(c.ClipStore); err != nil {
		return Config{}, fmt.Errorf("config: clip_store: %w", err)
	}
	if c.LogFile, err = homedir.Expand(c.LogFile); err != nil {
		return Config{}, fmt.Errorf("config: log_file: %w", err)
	}
	return c, nil
}
