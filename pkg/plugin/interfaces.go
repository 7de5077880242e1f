package plugin

import (
	"context"
	"errors"
)

// ErrInvalidArgument is returned by an Adjuster when a function receives
// arguments it cannot use. The host reports it as an invalid adjustment
// argument rather than a plugin failure.
var ErrInvalidArgument = errors.New("invalid argument")

// Adjuster is the interface that adjustment plugins must implement for go-plugin RPC.
type Adjuster interface {
	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// Functions lists the adjustment functions the plugin provides.
	Functions() []FunctionInfo

	// Adjust applies the named function to c.
	Adjust(ctx context.Context, name string, c Colour, args []string) (Colour, error)
}
