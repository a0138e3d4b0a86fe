package gen

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(fs afero.Fs, outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := fs.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	// Not a .go file: the sidecar must never be compiled with the package.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.txt"

	return afero.WriteFile(fs, filepath.Join(outDir, debugName), content, filePerm)
}
