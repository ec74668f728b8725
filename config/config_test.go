package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/txlog/mlog"
	"github.com/pmkol/txlog/pkg/list"
)

func writeYAML(t *testing.T, v any) string {
	t.Helper()
	b, err := yaml.Marshal(v)
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, b, 0o600))
	return p
}

func TestLoad(t *testing.T) {
	p := writeYAML(t, map[string]any{
		"log":  map[string]any{"level": "debug"},
		"list": map[string]any{"capacity": 32, "disable_slot_reuse": true},
	})
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, &Config{
		Log:  mlog.LogConfig{Level: "debug"},
		List: list.Options{Capacity: 32, DisableSlotReuse: true},
	}, cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	p = writeYAML(t, map[string]any{"list": map[string]any{"size": 1}})
	_, err = Load(p)
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	in := &Config{
		Log:  mlog.LogConfig{Level: "warn", Production: true},
		List: list.Options{Capacity: 8},
	}
	b, err := in.Marshal()
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, b, 0o600))
	out, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"list": map[string]any{"capacity": "16"},
	})
	require.NoError(t, err)
	require.Equal(t, 16, cfg.List.Capacity)

	_, err = Decode(map[string]any{"lists": nil})
	require.Error(t, err)
}

func TestNewList(t *testing.T) {
	l, err := NewList(&Config{List: list.Options{Capacity: 4}})
	require.NoError(t, err)
	l.Append("a")
	v, ok := l.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)

	_, err = NewList(&Config{Log: mlog.LogConfig{Level: "nope"}})
	require.Error(t, err)
}
