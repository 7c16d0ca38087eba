package host

// Runtime implements Context over a Registry and a Logger.
type Runtime struct {
	logger   Logger
	registry *Registry
}

// NewRuntime creates a runtime. A nil registry behaves like an empty one.
func NewRuntime(logger Logger, registry *Registry) *Runtime {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Runtime{
		logger:   logger,
		registry: registry,
	}
}

// Log returns the runtime's logger.
func (r *Runtime) Log() Logger {
	return r.logger
}

// CapabilityProviders returns the registered providers for kind.
func (r *Runtime) CapabilityProviders(kind Kind) []any {
	return r.registry.Providers(kind)
}

// Registry exposes the underlying registry so the host can register
// providers after construction.
func (r *Runtime) Registry() *Registry {
	return r.registry
}
