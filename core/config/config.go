package config

import (
	_ "embed"
	"errors"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/rsh/core/growbuf"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	// EnvConfig names the environment variable holding the config location.
	EnvConfig = "RSH_CONFIG"
)

const (
	ExhaustedAbort = "abort"
	ExhaustedSkip  = "skip"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrNoConfigDir is returned when opening a configured file without a
// configuration directory.
var ErrNoConfigDir = errors.New("no configuration directory")

type Configuration struct {
	configFs afero.Fs

	Prompt         string `json:"prompt" validate:"required"`
	FallbackPrompt string `json:"fallback_prompt" validate:"required"`

	LineBufferIncrement  int `json:"line_buffer_increment" validate:"gte=1"`
	TokenBufferIncrement int `json:"token_buffer_increment" validate:"gte=1"`
	MaxLineBytes         int `json:"max_line_bytes" validate:"gte=0"`
	MaxTokens            int `json:"max_tokens" validate:"gte=0"`

	OnExhausted string `json:"on_exhausted" validate:"oneof=abort skip"`
	Color       string `json:"color" validate:"oneof=auto always never"`

	EventLog string `json:"event_log"`
	AppLog   string `json:"app_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// LineOptions returns the growth options for input lines.
func (c *Configuration) LineOptions() growbuf.Options {
	return growbuf.Options{Increment: c.LineBufferIncrement, Limit: c.MaxLineBytes}
}

// TokenOptions returns the growth options for token lists.
func (c *Configuration) TokenOptions() growbuf.Options {
	return growbuf.Options{Increment: c.TokenBufferIncrement, Limit: c.MaxTokens}
}

// AbortOnExhausted reports whether running out of buffer space is fatal.
func (c *Configuration) AbortOnExhausted() bool {
	return c.OnExhausted != ExhaustedSkip
}

// OpenEventLog opens the session event log in an append only state. It returns
// nil and no error if the event log is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.openAppend(c.EventLog)
}

// OpenAppLog opens the application log in an append only state. It returns
// nil and no error if the application log is disabled.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.openAppend(c.AppLog)
}

func (c *Configuration) openAppend(name string) (afero.File, error) {
	if name == "" {
		return nil, nil
	}
	if c.configFs == nil {
		return nil, ErrNoConfigDir
	}
	return c.configFs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
