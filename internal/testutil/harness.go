// Package testutil provides the shared harness for end-to-end tests that
// drive the application through its command line.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modelgen/internal/app"
	"github.com/vk/modelgen/internal/cli"
	"github.com/vk/modelgen/internal/hcl"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	// Dir is the temporary directory the input files were written to.
	Dir string
}

// Path returns the absolute path of a file inside the run directory.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// ReadFile returns the contents of a file inside the run directory.
func (r *HarnessResult) ReadFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(r.Path(name))
	require.NoError(t, err)
	return string(data)
}

// RunIntegrationTest writes files into a fresh temporary directory and runs
// the CLI with args from inside it. Relative paths in args resolve against
// that directory.
func RunIntegrationTest(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, args...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	resolved := make([]string, len(args))
	for i, arg := range args {
		if _, ok := files[arg]; ok || (i > 0 && filepath.Ext(arg) == ".h") {
			arg = filepath.Join(dir, arg)
		}
		resolved[i] = arg
	}

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}
	res := &HarnessResult{Dir: dir}

	cfg, exit, err := cli.Parse(append([]string{"-log-level", "debug"}, resolved...), out)
	if err != nil || exit {
		res.Output, res.Err = out.String(), err
		return res
	}

	a, err := app.NewApp(out, logs, cfg, hcl.NewLoader())
	if err == nil {
		err = a.Run(ctx)
	}

	res.Output, res.LogOutput, res.Err = out.String(), logs.String(), err
	t.Cleanup(func() {
		if os.Getenv("MODELGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
		}
	})
	return res
}
