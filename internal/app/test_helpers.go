package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Its logs and
// its command output share the returned buffer.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	testApp := NewApp(logBuffer, cfg, DefaultLoader(), modules...)

	t.Cleanup(func() {
		if os.Getenv("SIMENV_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
