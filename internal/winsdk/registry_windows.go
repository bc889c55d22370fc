//go:build windows

package winsdk

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/osdeverr/find-msvc/internal/ctxlog"
	"github.com/osdeverr/find-msvc/internal/model"
)

func readRegistry(ctx context.Context, path string) (model.SDK, error) {
	log := ctxlog.FromContext(ctx)

	// CreateKey opens the key if it exists, which is always the case on a
	// machine with the SDK; read access never needs elevation then.
	k, _, err := registry.CreateKey(registry.LOCAL_MACHINE, path, registry.READ|registry.WOW64_32KEY)
	if err != nil {
		return model.SDK{}, fmt.Errorf("opening HKLM\\%s: %w", path, err)
	}
	defer k.Close()

	folder, _, err := k.GetStringValue(ValueInstallationFolder)
	if err != nil {
		return model.SDK{}, fmt.Errorf("reading %s: %w", ValueInstallationFolder, err)
	}
	version, _, err := k.GetStringValue(ValueProductVersion)
	if err != nil {
		return model.SDK{}, fmt.Errorf("reading %s: %w", ValueProductVersion, err)
	}

	log.Debug("Read Windows SDK from registry.", "folder", folder, "product_version", version)
	return model.SDK{InstallationFolder: folder, ProductVersion: version}, nil
}
