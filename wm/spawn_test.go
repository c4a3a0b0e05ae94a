package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandLine(t *testing.T) {
	t.Setenv("DOTILE_TERMINAL", "st")

	tests := []struct {
		cmd  string
		want []string
	}{
		{"dmenu_run", []string{"dmenu_run"}},
		{"rofi -show drun", []string{"rofi", "-show", "drun"}},
		{`notify-send "hello world"`, []string{"notify-send", "hello world"}},
		{"$DOTILE_TERMINAL -e htop", []string{"st", "-e", "htop"}},
		{"ps aux | dmenu", []string{"sh", "-c", "ps aux | dmenu"}},
		{"xsetroot -solid black; picom", []string{"sh", "-c", "xsetroot -solid black; picom"}},
		{"maim > /tmp/shot.png", []string{"sh", "-c", "maim > /tmp/shot.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			got, err := commandLine(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandLineInvalid(t *testing.T) {
	for _, cmd := range []string{"", "   ", `echo "unterminated`} {
		_, err := commandLine(cmd)
		assert.Error(t, err, cmd)
	}
}
