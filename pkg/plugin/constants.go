// Package plugin provides the public API for accoutrement adjustment plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// PluginName is the key the adjuster is dispensed under.
const PluginName = "adjuster"

// Handshake is the handshake configuration for go-plugin protocol.
// go-plugin only compares the major version; minor versions are checked
// against the plugin metadata by CheckCompatible.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(CurrentVersion().Major),
	MagicCookieKey:   "ACCOUTREMENT_PLUGIN",
	MagicCookieValue: "accoutrement_adjust",
}

// PluginMap returns the plugin set served by, and dispensed from, an
// adjustment plugin.
func PluginMap(impl Adjuster) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &AdjusterRPC{Impl: impl},
	}
}

// Serve runs impl as a plugin process. It blocks until the host disconnects.
func Serve(impl Adjuster) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
