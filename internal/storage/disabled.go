package storage

import (
	"context"
	"errors"
	"time"
)

// ErrDisabled is returned by every operation when storage is not configured.
var ErrDisabled = errors.New("object storage is not configured")

// Disabled returns a Service whose every operation fails with ErrDisabled.
// The site runs without images rather than refusing to boot.
func Disabled() Service {
	return disabled{}
}

type disabled struct{}

func (disabled) PresignUpload(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrDisabled
}

func (disabled) PresignDownload(context.Context, string, time.Duration) (string, error) {
	return "", ErrDisabled
}

func (disabled) Delete(context.Context, string) error { return ErrDisabled }

func (disabled) EnsureBucket(context.Context) error { return ErrDisabled }

func (disabled) Health(context.Context) error { return ErrDisabled }
