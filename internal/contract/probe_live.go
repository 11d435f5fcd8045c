package contract

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PythonProber implements ImportProber by invoking the Python interpreter
// that runs the indexing scripts.
type PythonProber struct {
	interpreter string
}

// NewPythonProber creates a prober for the given interpreter binary.
// An empty name falls back to python3.
func NewPythonProber(interpreter string) *PythonProber {
	if interpreter == "" {
		interpreter = "python3"
	}
	return &PythonProber{interpreter: interpreter}
}

// Probe imports the module in a subprocess. Stderr of a failed import is
// folded into the returned error.
func (p *PythonProber) Probe(ctx context.Context, importName string) error {
	cmd := exec.CommandContext(ctx, p.interpreter, "-c", fmt.Sprintf("import %s", importName))
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("import %s failed: %s", importName, detail)
		}
		return fmt.Errorf("import %s failed: %w", importName, err)
	}
	return nil
}
