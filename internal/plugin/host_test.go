package plugin

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermueller/accoutrement-color/internal/adjust"
	"github.com/supermueller/accoutrement-color/internal/colour"
	protocol "github.com/supermueller/accoutrement-color/pkg/plugin"
)

type fakeAdjuster struct {
	info     protocol.PluginInfo
	fns      []protocol.FunctionInfo
	metaErr  error
	calls    []string
	lastArgs []string
}

func (f *fakeAdjuster) GetMetadata() (protocol.PluginInfo, error) {
	return f.info, f.metaErr
}

func (f *fakeAdjuster) Functions() ([]protocol.FunctionInfo, error) {
	return f.fns, nil
}

func (f *fakeAdjuster) Adjust(_ context.Context, name string, c protocol.Colour, args []string) (protocol.Colour, error) {
	f.calls = append(f.calls, name)
	f.lastArgs = args
	switch name {
	case "zero-green":
		c.G = 0
		return c, nil
	case "picky":
		return protocol.Colour{}, &protocol.RPCError{Message: "bad amount", InvalidArgument: true}
	default:
		return protocol.Colour{}, errors.New("connection reset")
	}
}

func newFake() *fakeAdjuster {
	return &fakeAdjuster{
		info: protocol.PluginInfo{Name: "fake", Version: "0.1.0", ProtocolVersion: protocol.ProtocolVersion},
		fns: []protocol.FunctionInfo{
			{Name: "zero-green", Aliases: []string{"no_green"}, Usage: "zero-green", Help: "drop the green channel"},
			{Name: "picky"},
			{Name: "flaky"},
		},
	}
}

func TestRegister(t *testing.T) {
	reg := adjust.NewDefault()
	fake := newFake()

	loaded, err := register("/plugins/fake", fake, reg)
	require.NoError(t, err)
	assert.Equal(t, "fake", loaded.Info.Name)
	assert.Len(t, loaded.Functions, 3)

	got, err := reg.Apply("No-Green", colour.MustParse("#336699cc"), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "#330099cc", got.Hex())
	assert.Equal(t, []string{"zero-green"}, fake.calls)
	assert.Equal(t, []string{"x"}, fake.lastArgs)

	var source string
	for _, d := range reg.Definitions() {
		if d.Name == "zero-green" {
			source = d.Source
		}
	}
	assert.Equal(t, "fake", source)

	_, err = reg.Apply("picky", colour.White, nil)
	assert.ErrorIs(t, err, adjust.ErrInvalidArgument)

	_, err = reg.Apply("flaky", colour.White, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, adjust.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRegisterClash(t *testing.T) {
	reg := adjust.NewDefault()
	fake := newFake()
	fake.fns = append(fake.fns, protocol.FunctionInfo{Name: "sepia", Aliases: []string{"Darken"}})

	_, err := register("/plugins/fake", fake, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"darken"`)
	assert.False(t, reg.Has("zero-green"), "clash must leave the registry untouched")
}

func TestRegisterDuplicateWithinPlugin(t *testing.T) {
	tests := []struct {
		name string
		fns  []protocol.FunctionInfo
	}{
		{name: "same name", fns: []protocol.FunctionInfo{{Name: "zero-green"}, {Name: "zero-green"}}},
		{name: "alias repeats name", fns: []protocol.FunctionInfo{{Name: "zero-green"}, {Name: "drop", Aliases: []string{"Zero_Green"}}}},
		{name: "alias repeated", fns: []protocol.FunctionInfo{{Name: "one", Aliases: []string{"x"}}, {Name: "two", Aliases: []string{"x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := adjust.NewDefault()
			before := reg.Names()

			fake := newFake()
			fake.fns = tt.fns
			_, err := register("/plugins/fake", fake, reg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "declared twice")
			assert.Equal(t, before, reg.Names(), "duplicate must leave the registry untouched")
		})
	}
}

func TestRegisterVersionAndMetadata(t *testing.T) {
	reg := adjust.NewRegistry()

	old := newFake()
	old.info.ProtocolVersion = "0.0.1"
	_, err := register("/plugins/old", old, reg)
	assert.ErrorContains(t, err, "incompatible major version")

	broken := newFake()
	broken.metaErr = fmt.Errorf("eof")
	_, err = register("/plugins/broken", broken, reg)
	assert.ErrorContains(t, err, "metadata")

	anon := newFake()
	anon.info.Name = ""
	loaded, err := register("/plugins/anon", anon, reg)
	require.NoError(t, err)
	assert.Equal(t, "/plugins/anon", loaded.Info.Name)
}

func TestLoadMissingBinary(t *testing.T) {
	h := NewHost(nil)
	defer h.Close()

	_, err := h.Load(filepath.Join(t.TempDir(), "nope"), adjust.NewDefault())
	assert.Error(t, err)

	err = h.LoadAll([]string{filepath.Join(t.TempDir(), "missing")}, adjust.NewDefault())
	assert.Error(t, err)
	assert.Empty(t, h.Plugins())
}

func TestWireConversion(t *testing.T) {
	c := colour.RGBA{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, c, fromWire(toWire(c)))
	assert.Equal(t, c.Hex(), toWire(c).Hex())
}
