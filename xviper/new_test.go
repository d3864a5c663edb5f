package xviper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(DefaultFileFlag, "", "config file")
	fs.Int("count", 10, "count")
	fs.StringSlice("means", []string{"1ms"}, "means")
	return fs
}

func TestStdOptions(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = newFlagSet()
		path    = writeConfig(t, "test.yaml", "count: 25\nname: fromfile\n")
	)

	require.NoError(fs.Parse([]string{"--file", path, "--means", "2ms,3ms"}))

	v, err := New(StdOptions("xvipertest", fs))
	require.NoError(err)
	require.NoError(ReadInConfig(v))

	assert.Equal(path, v.ConfigFileUsed())
	assert.Equal(25, v.GetInt("count"))
	assert.Equal("fromfile", v.GetString("name"))
	assert.Equal([]string{"2ms", "3ms"}, v.GetStringSlice("means"))
}

func TestStdOptionsEnvironment(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = newFlagSet()
	)

	t.Setenv("XVIPERTEST_COUNT", "99")
	t.Setenv("XVIPERTEST_SOME_KEY", "value")
	require.NoError(fs.Parse(nil))

	v, err := New(StdOptions("xvipertest", fs))
	require.NoError(err)
	require.NoError(ReadInConfig(v))

	assert.Empty(v.ConfigFileUsed())
	assert.Equal(99, v.GetInt("count"))
	assert.Equal("value", v.GetString("some.key"))
}

func TestReadInConfigMissingExplicitFile(t *testing.T) {
	v, err := New(SetConfigFile(filepath.Join(t.TempDir(), "nosuch.yaml")))
	require.NoError(t, err)
	assert.Error(t, ReadInConfig(v))
}

func TestConfigure(t *testing.T) {
	var (
		assert   = assert.New(t)
		expected = errors.New("expected")
	)

	v, err := Configure(nil, SetConfigName("ignored"))
	assert.Nil(v)
	assert.NoError(err)

	v, err = Configure(viper.New(), func(*viper.Viper) error { return expected })
	assert.Nil(v)
	assert.Equal(expected, err)
}

func TestBindConfigFile(t *testing.T) {
	var (
		assert = assert.New(t)
		fs     = pflag.NewFlagSet("test", pflag.ContinueOnError)
		v      = viper.New()
	)

	assert.NoError(BindConfigFile(fs, "missing")(v))
	assert.Empty(v.ConfigFileUsed())
}
