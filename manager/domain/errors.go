package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnknownNode         = errors.New("unknown node")
	ErrUnknownService      = errors.New("unknown service")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrNoCandidate         = errors.New("no candidate node")
	ErrAllocationExhausted = errors.New("no free port in range")
	ErrOrchestration       = errors.New("orchestration engine failure")
	ErrClusterExists       = errors.New("cluster already exists")
	ErrClusterInit         = errors.New("cluster initialization failed")
	ErrConfiguration       = errors.New("invalid configuration")
	ErrNodeInUse           = errors.New("node still runs services")
	ErrNilQueryInput       = errors.New("query options is nil")
	ErrNoClient            = errors.New("engine client is not initialized")
)
