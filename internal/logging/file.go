package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

const (
	rotationTime = 24 * time.Hour
	maxAge       = 7 * 24 * time.Hour
)

var newRotateLogs = func(pattern string, opts ...rotatelogs.Option) (io.Writer, error) {
	return rotatelogs.New(pattern, opts...)
}

// Output returns the writer for log records. With an empty path logs go to
// stdout only; otherwise they are also written to a daily rotated file whose
// current generation is reachable through path itself (a symlink).
func Output(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}

	w, err := newRotateLogs(path+".%Y%m%d",
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(rotationTime),
		rotatelogs.WithMaxAge(maxAge),
	)
	if err != nil {
		return nil, fmt.Errorf("log file %s: %w", path, err)
	}

	return io.MultiWriter(os.Stdout, w), nil
}
