package world

import "errors"

// ErrNotImplemented is returned by the storage entry points. World state is
// in-memory only for now; these exist so callers have a stable signature to
// target once a format is chosen.
var ErrNotImplemented = errors.New("world: storage not implemented")

// LoadMap would restore a previously saved world from storage.
func LoadMap(path string) (*Map, error) {
	return nil, ErrNotImplemented
}

// SaveMap would persist the world to storage.
func SaveMap(m *Map, path string) error {
	return ErrNotImplemented
}
