package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dmitrijs2005/fingervault/internal/flagx"
	"github.com/dmitrijs2005/fingervault/internal/timex"
)

// FileConfig mirrors Config for decoding config files. Durations use
// timex.Duration so files may say "30s" as well as integer nanoseconds.
type FileConfig struct {
	EndpointAddrHTTP  string         `json:"endpoint_addr_http" toml:"endpoint_addr_http"`
	S3RootUser        string         `json:"s3_root_user" toml:"s3_root_user"`
	S3RootPassword    string         `json:"s3_root_password" toml:"s3_root_password"`
	S3Bucket          string         `json:"s3_bucket" toml:"s3_bucket"`
	S3Region          string         `json:"s3_region" toml:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	TemplatePrefix    string         `json:"template_prefix" toml:"template_prefix"`
	TemplateExtension string         `json:"template_extension" toml:"template_extension"`
	ShutdownTimeout   timex.Duration `json:"shutdown_timeout" toml:"shutdown_timeout"`
	BodyLimit         int            `json:"body_limit" toml:"body_limit"`
	LogFile           string         `json:"log_file" toml:"log_file"`
}

// parseFile overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current values. Files ending in .toml are decoded
// as TOML, anything else as JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	fc := toFile(config)

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, fc); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		if err := json.Unmarshal(b, fc); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}

	fromFile(config, fc)
	return nil
}

func toFile(c *Config) *FileConfig {
	return &FileConfig{
		EndpointAddrHTTP:  c.EndpointAddrHTTP,
		S3RootUser:        c.S3RootUser,
		S3RootPassword:    c.S3RootPassword,
		S3Bucket:          c.S3Bucket,
		S3Region:          c.S3Region,
		S3BaseEndpoint:    c.S3BaseEndpoint,
		TemplatePrefix:    c.TemplatePrefix,
		TemplateExtension: c.TemplateExtension,
		ShutdownTimeout:   timex.Duration{Duration: c.ShutdownTimeout},
		BodyLimit:         c.BodyLimit,
		LogFile:           c.LogFile,
	}
}

func fromFile(c *Config, fc *FileConfig) {
	c.EndpointAddrHTTP = fc.EndpointAddrHTTP
	c.S3RootUser = fc.S3RootUser
	c.S3RootPassword = fc.S3RootPassword
	c.S3Bucket = fc.S3Bucket
	c.S3Region = fc.S3Region
	c.S3BaseEndpoint = fc.S3BaseEndpoint
	c.TemplatePrefix = fc.TemplatePrefix
	c.TemplateExtension = fc.TemplateExtension
	c.ShutdownTimeout = fc.ShutdownTimeout.Duration
	c.BodyLimit = fc.BodyLimit
	c.LogFile = fc.LogFile
}
