// Package plugin launches adjustment plugins and registers their functions.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/supermueller/accoutrement-color/internal/adjust"
	"github.com/supermueller/accoutrement-color/internal/colour"
	protocol "github.com/supermueller/accoutrement-color/pkg/plugin"
)

// Loaded describes a running plugin.
type Loaded struct {
	Path      string                  `json:"path"`
	Info      protocol.PluginInfo     `json:"info"`
	Functions []protocol.FunctionInfo `json:"functions"`
}

// adjuster is the host's view of a connected plugin.
type adjuster interface {
	GetMetadata() (protocol.PluginInfo, error)
	Functions() ([]protocol.FunctionInfo, error)
	Adjust(ctx context.Context, name string, c protocol.Colour, args []string) (protocol.Colour, error)
}

// Host owns plugin processes. Close kills them.
type Host struct {
	logger hclog.Logger

	mu      sync.Mutex
	clients []*goplugin.Client
	loaded  []Loaded
}

// NewHost creates a Host. A nil logger discards plugin output.
func NewHost(logger hclog.Logger) *Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Host{logger: logger}
}

// LoadAll starts every plugin in paths and registers its functions in reg.
// On error, plugins started so far keep running until Close.
func (h *Host) LoadAll(paths []string, reg *adjust.Registry) error {
	for _, path := range paths {
		if _, err := h.Load(path, reg); err != nil {
			return err
		}
	}
	return nil
}

// Load starts the plugin binary at path and registers its functions in reg.
// A function name that is already registered is an error and the plugin is
// stopped.
func (h *Host) Load(path string, reg *adjust.Registry) (Loaded, error) {
	if _, err := os.Stat(path); err != nil {
		return Loaded{}, fmt.Errorf("plugin %s: %w", path, err)
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  protocol.Handshake,
		Plugins:          protocol.PluginMap(nil),
		Cmd:              exec.Command(path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           h.logger.Named("plugin"),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return Loaded{}, fmt.Errorf("failed to get RPC client for %s: %w", path, err)
	}

	raw, err := rpcClient.Dispense(protocol.PluginName)
	if err != nil {
		client.Kill()
		return Loaded{}, fmt.Errorf("failed to dispense plugin %s: %w", path, err)
	}

	remote, ok := raw.(*protocol.AdjusterRPCClient)
	if !ok {
		client.Kill()
		return Loaded{}, fmt.Errorf("plugin %s dispensed unexpected type %T", path, raw)
	}

	loaded, err := register(path, remote, reg)
	if err != nil {
		client.Kill()
		return Loaded{}, err
	}

	h.logger.Debug("loaded plugin", "path", path, "name", loaded.Info.Name, "functions", len(loaded.Functions))

	h.mu.Lock()
	h.clients = append(h.clients, client)
	h.loaded = append(h.loaded, loaded)
	h.mu.Unlock()

	return loaded, nil
}

// Plugins returns the plugins loaded so far.
func (h *Host) Plugins() []Loaded {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Loaded, len(h.loaded))
	copy(out, h.loaded)
	return out
}

// Close kills all plugin processes.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.Kill()
	}
	h.clients = nil
	h.loaded = nil
}

// register checks the plugin's protocol version and adds its functions to
// reg. Names are checked before anything is registered so a clash leaves
// reg untouched.
func register(path string, remote adjuster, reg *adjust.Registry) (Loaded, error) {
	info, err := remote.GetMetadata()
	if err != nil {
		return Loaded{}, fmt.Errorf("plugin %s metadata: %w", path, err)
	}
	if err := protocol.CheckCompatible(info.ProtocolVersion); err != nil {
		return Loaded{}, fmt.Errorf("plugin %s: %w", path, err)
	}
	if info.Name == "" {
		info.Name = path
	}

	fns, err := remote.Functions()
	if err != nil {
		return Loaded{}, fmt.Errorf("plugin %s functions: %w", info.Name, err)
	}

	seen := make(map[string]bool)
	for _, fn := range fns {
		for _, name := range append([]string{fn.Name}, fn.Aliases...) {
			key := adjust.Normalise(name)
			if reg.Has(name) {
				return Loaded{}, fmt.Errorf("plugin %s: function %q is already registered", info.Name, key)
			}
			if seen[key] {
				return Loaded{}, fmt.Errorf("plugin %s: function %q is declared twice", info.Name, key)
			}
			seen[key] = true
		}
	}

	for _, fn := range fns {
		def := adjust.Definition{
			Name:    fn.Name,
			Aliases: fn.Aliases,
			Usage:   fn.Usage,
			Help:    fn.Help,
			Source:  info.Name,
			Func:    remoteFunc(remote, fn.Name),
		}
		if err := reg.Register(def); err != nil {
			return Loaded{}, fmt.Errorf("plugin %s: %w", info.Name, err)
		}
	}

	return Loaded{Path: path, Info: info, Functions: fns}, nil
}

// remoteFunc adapts a plugin function to adjust.Func.
func remoteFunc(remote adjuster, name string) adjust.Func {
	return func(c colour.RGBA, args []string) (colour.RGBA, error) {
		out, err := remote.Adjust(context.Background(), name, toWire(c), args)
		if err != nil {
			if errors.Is(err, protocol.ErrInvalidArgument) {
				return colour.RGBA{}, fmt.Errorf("%w: %v", adjust.ErrInvalidArgument, err)
			}
			return colour.RGBA{}, fmt.Errorf("plugin function %s: %w", name, err)
		}
		return fromWire(out), nil
	}
}

func toWire(c colour.RGBA) protocol.Colour {
	return protocol.Colour{R: c.R, G: c.G, B: c.B, A: c.A}
}

func fromWire(c protocol.Colour) colour.RGBA {
	return colour.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
