package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Config is the root of the configuration file.
type Config struct {
	Version        string           `yaml:"version"`
	StoreField     string           `yaml:"store_field,omitempty"`
	RegistrarField string           `yaml:"registrar_field,omitempty"`
	Receiver       string           `yaml:"receiver,omitempty"`
	KeyPrefix      string           `yaml:"key_prefix,omitempty"`
	FileSuffix     string           `yaml:"file_suffix,omitempty"`
	Owners         map[string]Owner `yaml:"owners,omitempty"`
}

// Owner holds per-owner overrides. Empty fields inherit the top-level value.
type Owner struct {
	StoreField     string  `yaml:"store_field,omitempty"`
	RegistrarField string  `yaml:"registrar_field,omitempty"`
	Receiver       string  `yaml:"receiver,omitempty"`
	KeyPrefix      *string `yaml:"key_prefix,omitempty"`
}

// OwnerSettings is the effective configuration for one owner type.
type OwnerSettings struct {
	StoreField     string
	RegistrarField string
	Receiver       string
	KeyPrefix      string
}

// Default values.
const (
	DefaultVersion        = "1"
	DefaultStoreField     = "store"
	DefaultRegistrarField = "registrar"
	DefaultFileSuffix     = "_kvgen.go"
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// ForOwner resolves the effective settings for the named owner type.
func (c *Config) ForOwner(name string) OwnerSettings {
	s := OwnerSettings{
		StoreField:     c.StoreField,
		RegistrarField: c.RegistrarField,
		Receiver:       c.Receiver,
		KeyPrefix:      c.KeyPrefix,
	}

	if o, ok := c.Owners[name]; ok {
		if o.StoreField != "" {
			s.StoreField = o.StoreField
		}

		if o.RegistrarField != "" {
			s.RegistrarField = o.RegistrarField
		}

		if o.Receiver != "" {
			s.Receiver = o.Receiver
		}

		if o.KeyPrefix != nil {
			s.KeyPrefix = *o.KeyPrefix
		}
	}

	if s.Receiver == "" {
		s.Receiver = ReceiverName(name)
	}

	return s
}

// ReceiverName derives a receiver name from a type name: the lower-cased first letter.
func ReceiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(typeName, "_"))
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "x"
	}

	return string(unicode.ToLower(r))
}
