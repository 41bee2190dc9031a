// Package config handles configuration for the server,
// including defaults, a JSON or TOML file overlay, and command-line flags.
package config

import (
	"time"

	"github.com/mcuadros/go-defaults"
)

// Config holds runtime settings for the fingervault server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - S3RootUser / S3RootPassword: static credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings. An empty
//     S3BaseEndpoint means the provider's default endpoint (AWS).
//   - TemplatePrefix / TemplateExtension: object keys are prefix + id + extension.
//   - ShutdownTimeout: how long in-flight requests get after a stop signal.
//   - BodyLimit: maximum request body size, bytes.
//   - LogFile: optional rotated log file; stdout is always written.
type Config struct {
	EndpointAddrHTTP  string        `default:":5000"`
	S3RootUser        string        `default:"admin"`
	S3RootPassword    string        `default:"secretpassword"`
	S3Bucket          string        `default:"signupdetails"`
	S3Region          string        `default:"us-east-1"`
	S3BaseEndpoint    string        `default:"http://127.0.0.1:9000/"`
	TemplatePrefix    string        `default:"fingerprints/"`
	TemplateExtension string        `default:".txt"`
	ShutdownTimeout   time.Duration `default:"10s"`
	BodyLimit         int           `default:"4194304"`
	LogFile           string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the credentials are MinIO's local defaults and must be overridden in production.
func (c *Config) LoadDefaults() {
	defaults.SetDefaults(c)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
// args are the process arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
