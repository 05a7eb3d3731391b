// Assistant CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/assistant/internal/dagger"
)

// Assistant is the main module for the assistant CI/CD pipeline
type Assistant struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new assistant CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Assistant {
	return &Assistant{
		Source: source,
	}
}

// goContainer returns an Alpine-based Go container with the module caches
// and the project source mounted.
//
// It is the shared foundation for tests, builds, and linting.
func (a *Assistant) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", a.Source)
}

// Test runs the assistant unit tests via "go test"
func (a *Assistant) Test(ctx context.Context) (string, error) {
	return a.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
