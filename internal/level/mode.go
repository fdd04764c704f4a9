package level

// ViewMode selects what the viewer shows.
type ViewMode int

const (
	// ViewLevel shows the finished level with its entities.
	ViewLevel ViewMode = iota
	// ViewHistory plays back the build snapshots.
	ViewHistory
	// ViewGallery pages through the wave function collapse patterns of the level.
	ViewGallery
)

// String returns a human-readable mode name.
func (m ViewMode) String() string {
	switch m {
	case ViewLevel:
		return "level"
	case ViewHistory:
		return "history"
	case ViewGallery:
		return "gallery"
	default:
		return "unknown"
	}
}

// next cycles through the modes.
func (m ViewMode) next() ViewMode {
	return (m + 1) % 3
}
