// Package version exposes build information for the mp binaries.
//
// Values are stamped at link time and fall back to the module's VCS
// metadata:
//
//	go build -ldflags "-X github.com/kbukum/mp/version.Version=1.0.0" ./cmd/api
package version
