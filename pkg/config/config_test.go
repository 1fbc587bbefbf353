package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/docnav/pkg/server"
	"github.com/mchmarny/docnav/pkg/sidebar"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", server.DefaultPort, "")
	fs.String("sidebar", "", "")
	fs.String("base-path", "", "")
	fs.String("id-scope", "", "")
	fs.Bool("watch", false, "")
	fs.Duration("shutdown-timeout", server.DefaultShutdownTimeout, "")
	return fs
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, server.DefaultPort, cfg.Port)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, "docs", cfg.DocsPrefix)
	assert.Empty(t, cfg.SidebarFile)
	assert.Equal(t, "global", cfg.IDScope)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.False(t, cfg.Watch)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(`
port: 9000
base_path: /file
sidebar_file: from-file.yaml
shutdown_timeout: 2s
`), 0o600))

	t.Setenv("DOCNAV_BASE_PATH", "/env")
	t.Setenv("DOCNAV_PORT", "9100")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--port", "9200", "--id-scope", "siblings"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Port, "flag beats env")
	assert.Equal(t, "/env", cfg.BasePath, "env beats file")
	assert.Equal(t, "from-file.yaml", cfg.SidebarFile, "file beats default")
	assert.Equal(t, "siblings", cfg.IDScope)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DOCNAV_PORT", "9100")

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
}

func TestLoad_SidebarFlag(t *testing.T) {
	chdir(t, t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--sidebar", "nav.yaml", "--watch"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "nav.yaml", cfg.SidebarFile)
	assert.True(t, cfg.Watch)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("docs_prefix: guides\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "guides", cfg.DocsPrefix)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("DOCNAV_ID_SCOPE", "tree")
	_, err := Load("", nil)
	assert.ErrorContains(t, err, "invalid id scope")
}

func TestConfig_Validate(t *testing.T) {
	base := Config{Port: 80, IDScope: "global", LogFormat: "text"}
	assert.NoError(t, base.Validate())

	bad := base
	bad.Port = 70000
	assert.Error(t, bad.Validate())

	bad = base
	bad.LogFormat = "xml"
	assert.Error(t, bad.Validate())

	bad = base
	bad.ShutdownTimeout = -time.Second
	assert.Error(t, bad.Validate())
}

func TestConfig_ResolverAndValidateOptions(t *testing.T) {
	cfg := Config{BasePath: "/ui", DocsPrefix: "guides", IDScope: "siblings"}

	assert.Equal(t, "/ui/guides/intro", cfg.Resolver().Href(sidebar.Doc("intro", "Intro")))

	s := sidebar.New("t").Add("docs",
		sidebar.Category("a", "A", sidebar.Doc("x", "X")),
		sidebar.Category("b", "B", sidebar.Doc("x", "X")),
	)
	assert.NoError(t, s.Validate(cfg.ValidateOptions()...))

	cfg.IDScope = "global"
	assert.ErrorIs(t, s.Validate(cfg.ValidateOptions()...), sidebar.ErrDuplicateID)

	cfg.StrictRoutes = true
	dup := sidebar.New("t").Add("docs",
		sidebar.Doc("intro", "Intro"),
		sidebar.Link("again", "Again", "/guides/intro"),
	)
	assert.ErrorIs(t, dup.Validate(cfg.ValidateOptions()...), sidebar.ErrDuplicateRoute)
}
