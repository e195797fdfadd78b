package engine

import "strings"

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"bin":          true,
}

// suffixes of files that are never disclosure text
var defaultExcludeFileSuffixes = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico",
	".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z",
	".docx", ".xlsx", ".pptx",
	".exe", ".dll", ".so", ".wasm",
	".go", ".py", ".js", ".ts", ".java",
	".lock", ".sum",
}

// files esglens itself writes next to the documents it scans
var internalFileNames = map[string]bool{
	".esglenscache.json":      true,
	".esglens_last_scan.json": true,
	".esglens_audit.jsonl":    true,
	".esglensignore":          true,
	"esglens.baseline.json":   true,
	".esglens.yml":            true,
	".esglens.yaml":           true,
	"esglens.yml":             true,
	"esglens.yaml":            true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

func isDefaultFileExcluded(lowerRel string) bool {
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	return strings.HasSuffix(lowerRel, ".ds_store")
}

func isInternalFile(rel string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	return internalFileNames[base]
}
