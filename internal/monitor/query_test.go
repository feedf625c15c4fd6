package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSession_SubmitByPort(t *testing.T) {
	s := NewFilterSession()
	s.SetMode(FilterByPort)
	s.SetValue("443")

	q, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, ByPort("443"), q)
	assert.Equal(t, ByPort("443"), s.CurrentQuery())
}

func TestFilterSession_SetModeResetsToAll(t *testing.T) {
	s := NewFilterSession()
	s.SetMode(FilterByPort)
	s.SetValue("443")
	_, err := s.Submit()
	require.NoError(t, err)

	s.SetMode(FilterNone)
	assert.Equal(t, All(), s.CurrentQuery())
	assert.Empty(t, s.Value())

	s.SetMode(FilterBySourceIP)
	assert.Equal(t, All(), s.CurrentQuery(), "switching mode without submit keeps All")
}

func TestFilterSession_SetValueActivatesQuery(t *testing.T) {
	s := NewFilterSession()
	s.SetMode(FilterByPort)
	s.SetValue("443")
	assert.Equal(t, ByPort("443"), s.CurrentQuery())

	s.SetMode(FilterNone)
	assert.Equal(t, All(), s.CurrentQuery())
	assert.Empty(t, s.Value())
}

func TestFilterSession_SetValueBlankKeepsAll(t *testing.T) {
	tests := []struct {
		name  string
		mode  FilterMode
		value string
	}{
		{"port empty", FilterByPort, ""},
		{"source blank", FilterBySourceIP, "  "},
		{"none with value", FilterNone, "443"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilterSession()
			s.SetMode(tt.mode)
			s.SetValue(tt.value)
			assert.Equal(t, All(), s.CurrentQuery())
			assert.Equal(t, uint64(0), s.Generation())
		})
	}
}

func TestFilterSession_SetModeSameModeKeepsQuery(t *testing.T) {
	s := NewFilterSession()
	s.SetMode(FilterByType)
	s.SetValue("dos")
	gen := s.Generation()

	s.SetMode(FilterByType)
	assert.Equal(t, ByType("dos"), s.CurrentQuery())
	assert.Equal(t, "dos", s.Value())
	assert.Equal(t, gen, s.Generation())
}

func TestFilterSession_SubmitEmptyValue(t *testing.T) {
	tests := []struct {
		name  string
		mode  FilterMode
		value string
	}{
		{"port empty", FilterByPort, ""},
		{"source blank", FilterBySourceIP, "   "},
		{"type empty", FilterByType, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFilterSession()
			s.SetMode(tt.mode)
			s.SetValue(tt.value)
			gen := s.Generation()

			_, err := s.Submit()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, All(), s.CurrentQuery())
			assert.Equal(t, gen, s.Generation())
		})
	}
}

func TestFilterSession_SubmitNoneIsAll(t *testing.T) {
	s := NewFilterSession()
	s.SetValue("ignored")

	q, err := s.Submit()
	require.NoError(t, err)
	assert.True(t, q.IsAll())
}

func TestFilterSession_GenerationTracksActiveQuery(t *testing.T) {
	s := NewFilterSession()
	assert.Equal(t, uint64(0), s.Generation())

	s.SetMode(FilterByType)
	assert.Equal(t, uint64(0), s.Generation(), "All stays All")

	s.SetValue("portscan")
	assert.Equal(t, uint64(1), s.Generation())

	_, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.Generation(), "submitting the active query is a no-op")

	s.SetMode(FilterNone)
	assert.Equal(t, uint64(2), s.Generation())
}

func TestFilterSession_TrimsValue(t *testing.T) {
	s := NewFilterSession()
	s.SetMode(FilterBySourceIP)
	s.SetValue(" 10.0.0.5 ")

	q, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, BySourceIP("10.0.0.5"), q)
}

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		in   string
		want FilterMode
		ok   bool
	}{
		{"", FilterNone, true},
		{"all", FilterNone, true},
		{"port", FilterByPort, true},
		{"PORT", FilterByPort, true},
		{"source-ip", FilterBySourceIP, true},
		{"ip", FilterBySourceIP, true},
		{"category", FilterByType, true},
		{"destination", FilterNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFilterMode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_String(t *testing.T) {
	assert.Equal(t, "all", All().String())
	assert.Equal(t, "port=22", ByPort("22").String())
	assert.Equal(t, "source=1.2.3.4", BySourceIP("1.2.3.4").String())
	assert.Equal(t, "type=ddos", ByType("ddos").String())
}
