package staging

import (
	"fmt"

	"github.com/spf13/afero"

	"shelfsend/internal/config"
	"shelfsend/internal/shelf"
)

// NewRegistryFromConfig creates a Registry backed by the filesystem named in cfg.Type.
//
//   - "filesystem" (default): copies are written to the real scratch directory.
//   - "memory": sources are read from disk but copies live in memory, so
//     nothing is ever written under the cache root.
func NewRegistryFromConfig(cfg config.StagingConfig, logger shelf.Logger) (shelf.Registry, error) {
	var afs afero.Fs
	switch cfg.Type {
	case "filesystem", "":
		afs = afero.NewOsFs()
	case "memory":
		afs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
	default:
		return nil, fmt.Errorf("unknown staging type: %s", cfg.Type)
	}

	resolver, err := NewScratchResolver(afs, cfg.CacheRoot, cfg.DirName, logger)
	if err != nil {
		return nil, fmt.Errorf("creating scratch resolver: %w", err)
	}
	return NewRegistry(afs, resolver), nil
}
