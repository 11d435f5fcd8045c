package core

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/EmilStenstrom/gamecache/internal/contract"
	"github.com/EmilStenstrom/gamecache/schema"
)

// importOverrides maps manifest names whose import name differs from the
// package name. Everything else follows the hyphen/dot rewrite rules.
var importOverrides = map[string]string{
	"pillow": "PIL",
	"pynacl": "nacl",
}

// versionSeparators all apply; the earliest match in the line wins so
// range specifiers like "urllib3<=2,>=1.26" cut at the first operator.
var versionSeparators = []string{"==", ">=", "<=", "~="}

// ParseManifest reads a pip-style requirements manifest. Blank lines and
// comment lines are skipped; version clauses are stripped.
func ParseManifest(data []byte) []schema.DependencySpec {
	var specs []schema.DependencySpec
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cut := -1
		for _, sep := range versionSeparators {
			if idx := strings.Index(line, sep); idx >= 0 && (cut < 0 || idx < cut) {
				cut = idx
			}
		}
		if cut >= 0 {
			line = strings.TrimSpace(line[:cut])
		}
		if line == "" {
			continue
		}
		specs = append(specs, schema.DependencySpec{
			DeclaredName: line,
			ImportName:   ImportNameFor(line),
		})
	}
	return specs
}

// ImportNameFor resolves the import probe name for a declared dependency.
func ImportNameFor(declared string) string {
	if override, ok := importOverrides[strings.ToLower(declared)]; ok {
		return override
	}
	name := strings.ReplaceAll(declared, "-", "_")
	return strings.ReplaceAll(name, ".", "_")
}

// CheckDependencies audits the tooling manifest against the scripting
// runtime. Every entry is probed; missing modules are aggregated into a
// single Fail outcome naming the declared (not import) names.
func CheckDependencies(ctx context.Context, prober contract.ImportProber, manifestPath string) schema.ValidationOutcome {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return schema.ValidationOutcome{
			CheckName: schema.CheckDependencies,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("could not read dependency manifest %s: %v", manifestPath, err),
		}
	}

	specs := ParseManifest(data)
	var missing []string
	for _, spec := range specs {
		if err := prober.Probe(ctx, spec.ImportName); err != nil {
			missing = append(missing, spec.DeclaredName)
		}
	}

	if len(missing) > 0 {
		return schema.ValidationOutcome{
			CheckName: schema.CheckDependencies,
			Severity:  schema.SeverityFail,
			Message:   fmt.Sprintf("missing tooling dependencies: %s", strings.Join(missing, ", ")),
			Details: []string{
				fmt.Sprintf("Run: pip install -r %s", manifestPath),
			},
		}
	}

	return schema.ValidationOutcome{
		CheckName: schema.CheckDependencies,
		Severity:  schema.SeverityPass,
		Message:   fmt.Sprintf("all %d tooling dependencies import cleanly", len(specs)),
	}
}
