package pkg

import "errors"

var (
	// Pipeline errors 🔗
	ErrNoLinkFlags = errors.New("❌ no link flags given (set LINKFLAGS or --linkflags)")
)
