//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

func runScene(name string) error {
	args := []string{"run", "./cmd/" + binaryName, "--scene", name}
	if cfg := os.Getenv("OXY_CUBE_CONFIG"); cfg != "" {
		args = append(args, "--config", cfg, "--watch")
	}
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}

// Cube runs the rotating cube sample. Set OXY_CUBE_CONFIG to load and watch a config file.
func (Run) Cube() error {
	return runScene("cube")
}

// Triangle runs the triangle sample.
func (Run) Triangle() error {
	return runScene("triangle")
}

// Clear runs the clear-only sample.
func (Run) Clear() error {
	return runScene("clear")
}
