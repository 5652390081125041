package cmd

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tide/internal/config"
	"github.com/zjrosen/tide/internal/editor"
)

// runCommand executes the root command with args against an in-memory
// filesystem and returns its output.
func runCommand(t *testing.T, files map[string]string, args ...string) (string, error) {
	t.Helper()

	mem := afero.NewMemMapFs()
	for path, body := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(body), 0644))
	}
	prevFs := fsys
	fsys = mem
	t.Cleanup(func() {
		fsys = prevFs
		cfgFile = ""
		cfg, cfgErr, cfgPath = config.Config{}, nil, ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand_PrintsDefaults(t *testing.T) {
	out, err := runCommand(t, nil, "config", "--config", "")

	require.NoError(t, err)
	require.Contains(t, out, "show_line_numbers: true")
	require.Contains(t, out, "default_filename: untitled.txt")
	require.Contains(t, out, "syntax-cache: true")
}

func TestConfigCommand_ReadsExplicitFile(t *testing.T) {
	files := map[string]string{
		"/etc/tide.yaml": "show_line_numbers: false\ndefault_filename: scratch.c\n",
	}

	out, err := runCommand(t, files, "config", "--config", "/etc/tide.yaml")

	require.NoError(t, err)
	require.Contains(t, out, "# from /etc/tide.yaml")
	require.Contains(t, out, "show_line_numbers: false")
	require.Contains(t, out, "default_filename: scratch.c")
}

func TestConfigCommand_FileFlagsKeepDefaults(t *testing.T) {
	files := map[string]string{
		"/etc/tide.yaml": "flags:\n  experimental: true\n",
	}

	out, err := runCommand(t, files, "config", "--config", "/etc/tide.yaml")

	require.NoError(t, err)
	require.Contains(t, out, "experimental: true")
	require.Contains(t, out, "syntax-cache: true")
}

func TestConfigCommand_InvalidThemeFails(t *testing.T) {
	files := map[string]string{
		"/etc/tide.yaml": "theme:\n  keyword: blue\n",
	}

	_, err := runCommand(t, files, "config", "--config", "/etc/tide.yaml")

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid hex color for keyword")
}

func TestCommandsCommand_ListsEveryCommand(t *testing.T) {
	out, err := runCommand(t, nil, "commands")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	for _, name := range editor.DefaultInterpreter().Names() {
		require.Contains(t, plain, ":"+name)
		require.NotEmpty(t, commandDescriptions[name], name)
	}
	require.Contains(t, plain, "insert")
	require.Contains(t, plain, "NORMAL")
}

func TestResolvePath(t *testing.T) {
	c := config.Defaults()

	require.Equal(t, "main.cpp", resolvePath([]string{"main.cpp"}, c))
	require.Equal(t, "untitled.txt", resolvePath(nil, c))
	require.Equal(t, "untitled.txt", resolvePath([]string{""}, c))

	c.DefaultFilename = "scratch.c"
	require.Equal(t, "scratch.c", resolvePath(nil, c))
}

func TestRoot_RejectsExtraArgs(t *testing.T) {
	_, err := runCommand(t, nil, "a.txt", "b.txt")

	require.Error(t, err)
}

func TestInitLogging_DisabledByDefault(t *testing.T) {
	t.Setenv("TIDE_DEBUG", "")
	debugFlag = false

	cleanup, err := initLogging("tide")

	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
}
