// file: internal/testutil/integration.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/catalog-search/internal/config"
	"github.com/jdfalk/catalog-search/internal/matcher"
)

// CatalogFixtures are the files under testdata/catalog copied by SetupIntegration.
var CatalogFixtures = []string{"parts.json", "colors.yaml"}

// IntegrationEnv holds all resources for an integration test.
type IntegrationEnv struct {
	DataDir      string
	DatabasePath string
	TempDir      string
	T            *testing.T
}

// SetupIntegration copies the fixture catalog into a temp data directory
// and points config.AppConfig at it. The previous AppConfig is restored
// when the test ends.
func SetupIntegration(t *testing.T) *IntegrationEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tmpBase := t.TempDir()
	dataDir := filepath.Join(tmpBase, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	env := &IntegrationEnv{
		DataDir:      dataDir,
		DatabasePath: filepath.Join(tmpBase, "catalog.pebble"),
		TempDir:      tmpBase,
		T:            t,
	}
	for _, name := range CatalogFixtures {
		env.CopyFixture(name, dataDir, name)
	}

	orig := config.AppConfig
	config.AppConfig = config.Config{
		DataDir:             dataDir,
		StoreType:           config.StoreFile,
		DatabasePath:        env.DatabasePath,
		SimilarityThreshold: matcher.DefaultThreshold,
	}
	t.Cleanup(func() { config.AppConfig = orig })

	return env
}

// WriteCatalogFile writes body to name inside the data directory.
func (env *IntegrationEnv) WriteCatalogFile(name, body string) string {
	env.T.Helper()
	path := filepath.Join(env.DataDir, name)
	require.NoError(env.T, os.WriteFile(path, []byte(body), 0644))
	return path
}

// CopyFixture copies a catalog fixture to the target directory.
func (env *IntegrationEnv) CopyFixture(fixtureName, targetDir, targetName string) string {
	env.T.Helper()
	srcPath := filepath.Join(FindRepoRoot(env.T), "testdata", "catalog", fixtureName)
	dstPath := filepath.Join(targetDir, targetName)
	CopyFile(env.T, srcPath, dstPath)
	return dstPath
}

// FindRepoRoot walks up from CWD to find go.mod.
func FindRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find repo root (go.mod)")
		}
		dir = parent
	}
}

// CopyFile copies a file from src to dst.
func CopyFile(t *testing.T, src, dst string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
	data, err := os.ReadFile(src)
	require.NoError(t, err, "fixture %s not found", src)
	require.NoError(t, os.WriteFile(dst, data, 0644))
}
