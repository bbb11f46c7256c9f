package roster

import "github.com/kilianp07/solarsim/core/factory"

// DefaultType is used when no store type is configured.
const DefaultType = "memory"

var storeRegistry = factory.NewRegistry[Store]()

func init() {
	_ = RegisterStore(DefaultType, func(map[string]any) (Store, error) {
		return NewMemoryStore(nil), nil
	})
}

// RegisterStore adds a store factory identified by name.
func RegisterStore(name string, f factory.Factory[Store]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates the Store described by cfg.
func NewStore(cfg factory.ModuleConfig) (Store, error) {
	if cfg.Type == "" {
		cfg.Type = DefaultType
	}
	return storeRegistry.Create(cfg)
}
