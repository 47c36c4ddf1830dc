package launch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		exp      Settings
	}{
		{
			"empty",
			"",
			Settings{AskMode: true},
		},
		{
			"saved_channel",
			"openosrs.askMode=false\nopenosrs.bootstrapMode=NIGHTLY\n",
			Settings{BootstrapMode: "NIGHTLY"},
		},
		{
			"flags",
			"openosrs.disableHw=TRUE\nopenosrs.noJvm = true\n# openosrs.askMode=false\n",
			Settings{AskMode: true, DisableHw: true, NoJVM: true},
		},
		{
			"not_true",
			"openosrs.askMode=yes\nopenosrs.disableHw=1\n",
			Settings{},
		},
		{
			"no_expansion",
			"openosrs.bootstrapMode=${mode}\n",
			Settings{AskMode: true, BootstrapMode: "${mode}"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := LoadSettings(writeFile(t, "settings.properties", tc.contents))
			require.NoError(t, err)
			assert.Equal(t, tc.exp, s)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		s, err := LoadSettings(filepath.Join(t.TempDir(), "settings.properties"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSettings(), s)
	})
}

func TestSelectChannel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		settings Settings
		flags    ChannelFlags
		exp      Channel
	}{
		{"ask", Settings{AskMode: true}, ChannelFlags{}, NoChannel},
		{"ask_ignores_saved", Settings{AskMode: true, BootstrapMode: "STABLE"}, ChannelFlags{}, NoChannel},
		{"saved_stable", Settings{BootstrapMode: "STABLE"}, ChannelFlags{}, Stable},
		{"saved_nightly", Settings{BootstrapMode: "NIGHTLY"}, ChannelFlags{}, Nightly},
		{"saved_unknown", Settings{BootstrapMode: "BETA"}, ChannelFlags{}, NoChannel},
		{"flag_nightly", Settings{AskMode: true}, ChannelFlags{Nightly: true}, Nightly},
		{"flag_staging", Settings{AskMode: true}, ChannelFlags{Staging: true}, Staging},
		{"stable_over_nightly", Settings{BootstrapMode: "NIGHTLY"}, ChannelFlags{Stable: true}, Stable},
		{"nightly_over_staging", Settings{AskMode: true}, ChannelFlags{Nightly: true, Staging: true}, Nightly},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, SelectChannel(tc.settings, tc.flags))
		})
	}
}

func TestDefaultHardwareMode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HardwareDirectDraw, DefaultHardwareMode(Settings{}, "windows"))
	assert.Equal(t, HardwareOpenGL, DefaultHardwareMode(Settings{}, "darwin"))
	assert.Equal(t, HardwareOff, DefaultHardwareMode(Settings{}, "linux"))
	assert.Equal(t, HardwareOff, DefaultHardwareMode(Settings{DisableHw: true}, "windows"))

	m, err := ParseHardwareMode(" opengl")
	require.NoError(t, err)
	assert.Equal(t, HardwareOpenGL, m)
	_, err = ParseHardwareMode("vulkan")
	assert.Error(t, err)
}
