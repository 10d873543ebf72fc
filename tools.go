//go:build tools

package main

// Pins the mock generator used for the storage and notifier interfaces.
import (
	_ "github.com/vektra/mockery/v2"
)
