// Package winsdk reads the Windows SDK location and version from the registry.
package winsdk

import (
	"context"
	"fmt"

	"github.com/osdeverr/find-msvc/internal/model"
)

// KeyPath is the registry key, under HKEY_LOCAL_MACHINE, describing the
// Windows 10+ SDK.
const KeyPath = `SOFTWARE\WOW6432Node\Microsoft\Microsoft SDKs\Windows\v10.0`

// Registry value names under KeyPath.
const (
	ValueInstallationFolder = "InstallationFolder"
	ValueProductVersion     = "ProductVersion"
)

// Reader provides the raw SDK descriptor.
type Reader interface {
	ReadSDK(ctx context.Context) (model.SDK, error)
}

// Version turns the registry ProductVersion into the version used in SDK
// directory names. The registry omits the last component, which is always
// ".0" for the SDKs seen so far.
func Version(productVersion string) string {
	return productVersion + ".0"
}

// Registry reads the SDK descriptor from the local machine's registry.
type Registry struct{}

// ReadSDK implements Reader.
func (Registry) ReadSDK(ctx context.Context) (model.SDK, error) {
	return readRegistry(ctx, KeyPath)
}

// UnsupportedError is returned when the registry is not available.
type UnsupportedError struct {
	GOOS string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("the Windows registry is not available on %s", e.GOOS)
}
