package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/fingervault/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":5000")
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x string     template key prefix
//	-t string     template key extension
//	-w duration   graceful shutdown timeout
//	-m int        request body limit, bytes
//	-l string     log file path
//
// Args are filtered with flagx.FilterArgs first so that -c/-config and flags
// of other components do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-u", "-p", "-b", "-g", "-e", "-x", "-t", "-w", "-m", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.TemplatePrefix, "x", config.TemplatePrefix, "template key prefix")
	fs.StringVar(&config.TemplateExtension, "t", config.TemplateExtension, "template key extension")
	fs.DurationVar(&config.ShutdownTimeout, "w", config.ShutdownTimeout, "graceful shutdown timeout")
	fs.IntVar(&config.BodyLimit, "m", config.BodyLimit, "request body limit (bytes)")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file path")

	return fs.Parse(args)
}
