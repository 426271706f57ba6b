//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/apngkit/internal/logger"
)

func Mount(mountpoint string, frames [][]byte, template string, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
