//go:build !windows

package winsdk

import (
	"context"
	"runtime"

	"github.com/osdeverr/find-msvc/internal/model"
)

func readRegistry(context.Context, string) (model.SDK, error) {
	return model.SDK{}, &UnsupportedError{GOOS: runtime.GOOS}
}
