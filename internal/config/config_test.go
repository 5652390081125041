package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/tide/internal/flags"
)

// loadFromYAML loads body as a config file from an in-memory filesystem.
func loadFromYAML(t *testing.T, body string) (Config, error) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte(body), 0644))

	v := viper.New()
	v.SetFs(fsys)
	return Load(v, "/cfg/config.yaml")
}

func TestDefaults(t *testing.T) {
	d := Defaults()

	require.True(t, d.ShowLineNumbers)
	require.Equal(t, "untitled.txt", d.DefaultFilename)
	require.True(t, d.WatchFile)
	require.True(t, d.Flags[flags.FlagSyntaxCache])
	require.NoError(t, ValidateTheme(d.Theme))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")

	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_PartialFileOverridesOnlyWhatItNames(t *testing.T) {
	cfg, err := loadFromYAML(t, `
show_line_numbers: false
theme:
  keyword: "#FF0000"
flags:
  syntax-cache: false
`)

	require.NoError(t, err)
	require.False(t, cfg.ShowLineNumbers)
	require.Equal(t, "untitled.txt", cfg.DefaultFilename)
	require.True(t, cfg.WatchFile)
	require.Equal(t, "#FF0000", cfg.Theme.Keyword)
	require.Equal(t, Defaults().Theme.Comment, cfg.Theme.Comment)
	require.False(t, cfg.Flags[flags.FlagSyntaxCache])
}

func TestLoad_InvalidThemeColor(t *testing.T) {
	_, err := loadFromYAML(t, `
theme:
  comment: "grey"
  number: "#12"
`)

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid hex color for comment: grey")
	require.Contains(t, err.Error(), "invalid hex color for number: #12")
}

func TestLoad_EmptyDefaultFilename(t *testing.T) {
	_, err := loadFromYAML(t, `default_filename: "  "`)

	require.Error(t, err)
	require.Contains(t, err.Error(), "default_filename")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	v.SetFs(afero.NewMemMapFs())

	_, err := Load(v, "/nope/config.yaml")

	require.Error(t, err)
	require.Contains(t, err.Error(), "/nope/config.yaml")
}

func TestFindConfigFile(t *testing.T) {
	local := "/work/.tide/config.yaml"
	user := "/home/me/.config/tide/config.yaml"

	tests := []struct {
		name     string
		files    []string
		explicit string
		want     string
	}{
		{name: "explicit wins even when missing", files: []string{local, user}, explicit: "/etc/tide.yaml", want: "/etc/tide.yaml"},
		{name: "local before user", files: []string{local, user}, want: local},
		{name: "user when no local", files: []string{user}, want: user},
		{name: "nothing found", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for _, f := range tt.files {
				require.NoError(t, afero.WriteFile(fsys, f, []byte("{}"), 0644))
			}
			require.Equal(t, tt.want, FindConfigFile(fsys, tt.explicit, "/work", "/home/me"))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#a1b2c3", true},
		{"FFFFFF", false},
		{"#FFFF", false},
		{"#GGGGGG", false},
		{"", false},
		{"#", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.valid, IsValidHexColor(tt.color))
		})
	}
}

func TestValidateTheme_EmptyColorsAllowed(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
}

func TestRenderYAML_RoundTrips(t *testing.T) {
	cfg := Defaults()
	cfg.ShowLineNumbers = false
	cfg.Theme.Keyword = "#ABCDEF"

	out, err := RenderYAML(cfg)
	require.NoError(t, err)
	require.Contains(t, string(out), "# tide configuration\n")
	require.Contains(t, string(out), "show_line_numbers: false")
	require.Contains(t, string(out), "default_filename: untitled.txt")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Equal(t, cfg, decoded)

	// The rendered document is itself a loadable config file.
	loaded, err := loadFromYAML(t, string(out))
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
