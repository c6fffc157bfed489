package shelf

import (
	"github.com/dustin/go-humanize"

	"shelfsend/internal/fs"
)

// UnknownSize is shown for sources whose size cannot be read.
const UnknownSize = "Unknown"

// SourceInfo is the display form of a source file offered for staging.
type SourceInfo struct {
	Name string
	Size int64
	// Known is false when the size lookup failed.
	Known bool
}

// HumanSize formats the size for display, e.g. "1.5 KiB".
func (i *SourceInfo) HumanSize() string {
	if !i.Known {
		return UnknownSize
	}
	return humanize.IBytes(uint64(i.Size))
}

// DescribeSources returns a name and size for each source path, in order.
// Sizes are looked up on the source, not on the staged copy.
func (s *Service) DescribeSources(sourcePaths []string) []*SourceInfo {
	infos := make([]*SourceInfo, len(sourcePaths))
	for i, p := range sourcePaths {
		info := &SourceInfo{Name: displayName(p)}
		if size, err := s.registry.SizeOf(p); err == nil {
			info.Size = size
			info.Known = true
		}
		infos[i] = info
	}
	return infos
}

// displayName returns the file name of p, or p itself when it has none.
func displayName(p string) string {
	if name, ok := fs.FileName(p); ok {
		return name
	}
	return p
}
