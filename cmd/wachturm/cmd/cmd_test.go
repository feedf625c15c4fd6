package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/msto63/wachturm/internal/mockapi"
	"github.com/msto63/wachturm/internal/monitor"
	"github.com/msto63/wachturm/pkg/core/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("WACHTURM_CONFIG", "")
	t.Setenv("WACHTURM_API_URL", "")
	t.Setenv("HOME", t.TempDir())
}

func TestQueryFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   filterFlags
		want    monitor.Query
		wantErr bool
	}{
		{name: "none", want: monitor.All()},
		{name: "port", flags: filterFlags{port: "22"}, want: monitor.ByPort("22")},
		{name: "source", flags: filterFlags{source: "10.0.0.5"}, want: monitor.BySourceIP("10.0.0.5")},
		{name: "type", flags: filterFlags{typ: "dos"}, want: monitor.ByType("dos")},
		{name: "filter port", flags: filterFlags{filter: "port=443"}, want: monitor.ByPort("443")},
		{name: "filter ip alias", flags: filterFlags{filter: "ip= 10.0.0.7"}, want: monitor.BySourceIP("10.0.0.7")},
		{name: "filter category alias", flags: filterFlags{filter: "category=malware"}, want: monitor.ByType("malware")},
		{name: "filter all", flags: filterFlags{filter: "all"}, want: monitor.All()},
		{name: "filter unknown mode", flags: filterFlags{filter: "destination=10.0.0.1"}, wantErr: true},
		{name: "filter missing value", flags: filterFlags{filter: "port"}, wantErr: true},
		{name: "blank value", flags: filterFlags{port: "  "}, wantErr: true},
		{name: "two filters", flags: filterFlags{port: "22", typ: "dos"}, wantErr: true},
		{name: "flag and filter", flags: filterFlags{port: "22", filter: "type=dos"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := queryFromFlags(tt.flags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleRows() []monitor.Row {
	return monitor.Project([]monitor.LogRecord{
		{Time: "t1", Severity: monitor.SeverityHigh, Type: "dos", Source: "10.0.0.6", Destination: "10.0.0.1", Port: "443", Protocol: "TCP"},
	})
}

func TestWriteRows_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, sampleRows(), "json"))

	var out []snapshotRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "critical", out[0].SeverityClass)
	assert.Equal(t, "443", out[0].Port)
}

func TestWriteRows_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, sampleRows(), "yaml"))

	var out []snapshotRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "10.0.0.6", out[0].Source)
}

func TestWriteRows_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, sampleRows(), "table"))
	assert.Contains(t, buf.String(), "SCHWERE")
	assert.Contains(t, buf.String(), "10.0.0.6")
}

func TestWriteRows_UnknownFormat(t *testing.T) {
	assert.Error(t, writeRows(&bytes.Buffer{}, nil, "xml"))
}

func TestSnapshotCommand(t *testing.T) {
	isolateConfig(t)

	api := mockapi.NewServer(mockapi.Config{Retention: 10, Seed: 1})
	for _, port := range []string{"22", "443", "22", "22"} {
		api.Store().Add(mockapi.Record{Severity: "LOW", Type: "portscan", Source: "10.0.0.5", Port: port, Protocol: "TCP"})
	}
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"snapshot", "--api-url", srv.URL, "--port", "22", "--limit", "2", "-o", "json"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var rows []snapshotRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "22", r.Port)
		assert.Equal(t, "ok", r.SeverityClass)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Wachturm v")
	assert.Contains(t, out.String(), "Log Viewer: "+version.LogViewer)
	assert.Contains(t, out.String(), "Mock API:   "+version.MockAPI)
}

func TestStatusCommand(t *testing.T) {
	isolateConfig(t)

	srv := httptest.NewServer(mockapi.NewServer(mockapi.Config{Retention: 5, Seed: 1}).Handler())
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"status", "--api-url", srv.URL})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "healthy")
	assert.Contains(t, out.String(), "logs")
	assert.Contains(t, out.String(), "node")
}

func TestStatusCommand_Unreachable(t *testing.T) {
	isolateConfig(t)

	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"status", "--api-url", url})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	assert.Error(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "unhealthy")
}
