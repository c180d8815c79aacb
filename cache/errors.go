package cache

import (
	"net/http"

	"github.com/KOMKZ/property-catalog/errcode"
)

// ModuleCode cache module code
const ModuleCode = 70

// Business codes: 70xxxx
const (
	ErrCodeCacheMiss     = 1
	ErrCodeSerialize     = 2
	ErrCodeDeserialize   = 3
	ErrCodeStoreGet      = 4
	ErrCodeStoreSet      = 5
	ErrCodeStoreDelete   = 6
	ErrCodeConfigInvalid = 7
)

var (
	// ErrCacheMiss cache miss (not a fault; part of the normal read path)
	ErrCacheMiss = errcode.Register(errcode.New(
		ModuleCode, ErrCodeCacheMiss,
		"cache", "error.cache.miss", "cache miss",
		http.StatusOK,
	))

	// ErrSerialize serialization failed
	ErrSerialize = errcode.Register(errcode.New(
		ModuleCode, ErrCodeSerialize,
		"cache", "error.cache.serialize", "cache serialization failed",
		http.StatusInternalServerError,
	))

	// ErrDeserialize deserialization failed
	ErrDeserialize = errcode.Register(errcode.New(
		ModuleCode, ErrCodeDeserialize,
		"cache", "error.cache.deserialize", "cache deserialization failed",
		http.StatusInternalServerError,
	))

	// ErrStoreGet store get failed
	ErrStoreGet = errcode.Register(errcode.New(
		ModuleCode, ErrCodeStoreGet,
		"cache", "error.cache.store_get", "cache store get failed",
		http.StatusInternalServerError,
	))

	// ErrStoreSet store set failed
	ErrStoreSet = errcode.Register(errcode.New(
		ModuleCode, ErrCodeStoreSet,
		"cache", "error.cache.store_set", "cache store set failed",
		http.StatusInternalServerError,
	))

	// ErrStoreDelete store delete failed
	ErrStoreDelete = errcode.Register(errcode.New(
		ModuleCode, ErrCodeStoreDelete,
		"cache", "error.cache.store_delete", "cache store delete failed",
		http.StatusInternalServerError,
	))

	// ErrConfigInvalid invalid cache configuration
	ErrConfigInvalid = errcode.Register(errcode.New(
		ModuleCode, ErrCodeConfigInvalid,
		"cache", "error.cache.config_invalid", "invalid cache config",
		http.StatusInternalServerError,
	))
)
