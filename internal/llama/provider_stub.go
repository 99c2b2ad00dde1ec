//go:build !llama

package llama

// This file provides a no-FFI stub for the provider. It is compiled when the
// 'llama' build tag is NOT set, keeping default builds and CI free of native
// dependencies. The real provider lives in provider_yzma.go (tagged 'llama').

import "errors"

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// ErrNotBuilt is returned by the stub provider.
var ErrNotBuilt = errors.New("llama support not built (missing 'llama' build tag)")

type stubProvider struct{}

// NewProvider returns a provider that refuses to load models. This avoids
// any mocked inference in production binaries built without FFI support.
func NewProvider() Provider { return stubProvider{} }

func (stubProvider) Load(path string, params ModelParams) (Model, error) {
	return nil, ErrNotBuilt
}
