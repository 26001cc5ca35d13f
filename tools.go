//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep mockgen, invoked through
// `go generate` on the repositories, pinned in go.mod.
package rsvp_lab

import (
	_ "go.uber.org/mock/mockgen"
)
