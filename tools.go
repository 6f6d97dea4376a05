//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// mockgen is invoked through go generate on contract/contract.go and is
// tracked here so go.mod pins its version.
package chat_fs

import (
	_ "go.uber.org/mock/mockgen"
)
