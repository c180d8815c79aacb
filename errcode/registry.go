package errcode

import (
	"fmt"
	"sync"
)

// Registry error code registry (prevents code conflicts across modules)
type Registry struct {
	mu    sync.RWMutex
	codes map[int]string // code -> module:msgKey
}

// globalRegistry global error code registry
var globalRegistry = &Registry{
	codes: make(map[int]string),
}

// Register registers an error code
// Panics if the code already exists with a different msgKey
func Register(err *LayeredError) *LayeredError {
	return globalRegistry.Register(err)
}

// Register registers an error code into the registry
func (r *Registry) Register(err *LayeredError) *LayeredError {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := err.Code()
	key := fmt.Sprintf("%s:%s", err.Module(), err.MsgKey())

	if existingKey, exists := r.codes[code]; exists {
		if existingKey != key {
			panic(fmt.Sprintf(
				"error code conflict: code %d is already registered as %s, cannot register as %s",
				code, existingKey, key,
			))
		}
		// Same code and key, duplicate registration is idempotent
		return err
	}

	r.codes[code] = key
	return err
}

// IsRegistered checks whether a code has been registered
func (r *Registry) IsRegistered(code int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.codes[code]
	return exists
}

// IsRegistered checks whether a code has been registered in the global registry
func IsRegistered(code int) bool {
	return globalRegistry.IsRegistered(code)
}
