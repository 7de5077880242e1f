package plugin

import (
	"context"
	"errors"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// AdjusterRPC implements the go-plugin Plugin interface for adjustment plugins.
type AdjusterRPC struct {
	plugin.Plugin
	Impl Adjuster
}

// Server returns an RPC server for this plugin.
func (p *AdjusterRPC) Server(*plugin.MuxBroker) (any, error) {
	return &AdjusterRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *AdjusterRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &AdjusterRPCClient{client: c}, nil
}

// AdjusterRPCServer is the RPC server implementation for adjustment plugins.
type AdjusterRPCServer struct {
	Impl Adjuster
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *AdjusterRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// Functions implements the RPC method for listing functions.
func (s *AdjusterRPCServer) Functions(_ any, resp *[]FunctionInfo) error {
	*resp = s.Impl.Functions()
	return nil
}

// Adjust implements the RPC method for applying a function.
// Function failures travel in the response so that they are not confused
// with transport errors.
func (s *AdjusterRPCServer) Adjust(req AdjustRequest, resp *AdjustResponse) error {
	out, err := s.Impl.Adjust(context.Background(), req.Name, req.Colour, req.Args)
	if err != nil {
		resp.Error = err.Error()
		resp.InvalidArgument = errors.Is(err, ErrInvalidArgument)
		return nil
	}
	resp.Colour = out
	return nil
}

// AdjusterRPCClient is the RPC client implementation for adjustment plugins.
type AdjusterRPCClient struct {
	client *rpc.Client
}

// NewAdjusterRPCClient wraps an established RPC connection.
func NewAdjusterRPCClient(c *rpc.Client) *AdjusterRPCClient {
	return &AdjusterRPCClient{client: c}
}

// GetMetadata calls the remote GetMetadata method.
func (c *AdjusterRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// Functions calls the remote Functions method.
func (c *AdjusterRPCClient) Functions() ([]FunctionInfo, error) {
	var fns []FunctionInfo
	err := c.client.Call("Plugin.Functions", new(any), &fns)
	return fns, err
}

// Adjust calls the remote Adjust method.
func (c *AdjusterRPCClient) Adjust(_ context.Context, name string, col Colour, args []string) (Colour, error) {
	var resp AdjustResponse
	err := c.client.Call("Plugin.Adjust", AdjustRequest{Name: name, Colour: col, Args: args}, &resp)
	if err != nil {
		return Colour{}, err
	}
	if resp.Error != "" {
		return Colour{}, &RPCError{Message: resp.Error, InvalidArgument: resp.InvalidArgument}
	}
	return resp.Colour, nil
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message         string
	InvalidArgument bool
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}

// Is reports ErrInvalidArgument for argument failures.
func (e *RPCError) Is(target error) bool {
	return e.InvalidArgument && target == ErrInvalidArgument
}
