package storage

import (
	"sort"
	"sync"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/rs/zerolog"
)

// StorageEngineRegistry manages the storage engines a run can write to
type StorageEngineRegistry struct {
	engines map[EngineType]FileSystem
	mu      sync.RWMutex
	logger  zerolog.Logger
}

// NewStorageEngineRegistry creates a new storage engine registry
func NewStorageEngineRegistry(logger zerolog.Logger) *StorageEngineRegistry {
	return &StorageEngineRegistry{
		engines: make(map[EngineType]FileSystem),
		logger:  logger,
	}
}

// RegisterEngine registers a storage engine under its own type
func (r *StorageEngineRegistry) RegisterEngine(engine FileSystem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[engine.GetStorageType()] = engine
	r.logger.Debug().Str("engine", engine.GetStorageType().String()).Msg("Registered storage engine")
}

// GetEngine returns a storage engine by type
func (r *StorageEngineRegistry) GetEngine(engineType EngineType) (FileSystem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if engine, exists := r.engines[engineType]; exists {
		return engine, nil
	}
	return nil, errors.New(StorageEngineNotFound, "storage engine not configured", nil).AddContext("engine", engineType.String())
}

// Resolve maps a destination string to its engine and the engine-relative path.
func (r *StorageEngineRegistry) Resolve(dest string) (FileSystem, string, error) {
	engineType, path, err := ParseDestination(dest)
	if err != nil {
		return nil, "", err
	}
	engine, err := r.GetEngine(engineType)
	if err != nil {
		return nil, "", errors.AddContext(err, "destination", dest)
	}
	return engine, path, nil
}

// ListEngines returns the registered engine types, sorted.
func (r *StorageEngineRegistry) ListEngines() []EngineType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engines := make([]EngineType, 0, len(r.engines))
	for t := range r.engines {
		engines = append(engines, t)
	}
	sort.Slice(engines, func(i, j int) bool { return engines[i] < engines[j] })
	return engines
}

// EngineExists checks if a storage engine is registered
func (r *StorageEngineRegistry) EngineExists(engineType EngineType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.engines[engineType]
	return exists
}
