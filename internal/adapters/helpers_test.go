package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core).Sugar(), logs
}

// writeSource cria um arquivo-fonte vazio em dir e devolve o caminho absoluto.
func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("int main() {}\n"), 0o644))
	return p
}

func writeResult(t *testing.T, dir string, doc any) string {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return writeRaw(t, dir, b)
}

func writeRaw(t *testing.T, dir string, b []byte) string {
	t.Helper()
	p := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return p
}
