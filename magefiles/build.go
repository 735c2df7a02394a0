//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Build compiles the oxy-cube binary into ./bin.
func Build() error {
	mg.Deps(Vet)
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", binaryName), "./cmd/"+binaryName), withStream())
	return err
}

// Vet runs go vet over every package.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."))
	return err
}

// Test runs the unit tests. No test needs a GPU or a display, but the GLFW packages build
// through cgo and need the platform windowing headers.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
