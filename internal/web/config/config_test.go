package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "web.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"address":":8080","shutdown_timeout":"3s","log_level":"debug"}`), 0o600))

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			want: Config{Address: ":3000", RequireUserID: true, ShutdownTimeout: 10 * time.Second, LogLevel: "info"},
		},
		{
			name: "json file",
			args: []string{"-c", path},
			want: Config{Address: ":8080", RequireUserID: true, ShutdownTimeout: 3 * time.Second, LogLevel: "debug"},
		},
		{
			name: "flags win over json",
			args: []string{"-config=" + path, "-a", ":9090", "-u=false"},
			want: Config{Address: ":9090", RequireUserID: false, ShutdownTimeout: 3 * time.Second, LogLevel: "debug"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := load(tt.args)
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_BadJSONPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "web.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"address":`), 0o600))
	require.Panics(t, func() { load([]string{"-c", path}) })
}
