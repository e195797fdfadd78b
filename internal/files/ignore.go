package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// AppendIgnore ensures the given pattern is present in .gitignore at repoRoot.
// It creates the file if missing. Idempotent.
func AppendIgnore(repoRoot, pattern string) error {
	path := filepath.Join(repoRoot, ".gitignore")
	existing := map[string]bool{}
	endsWithNewline := true
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		endsWithNewline = len(b) == 0 || b[len(b)-1] == '\n'
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	line := pattern + "\n"
	if !endsWithNewline {
		line = "\n" + line
	}
	_, err = f.WriteString(line)
	return err
}

// StateFiles returns the files esglens writes into a scan root when no .git
// directory is present. None of them belong in version control.
func StateFiles() []string {
	return []string{
		".esglenscache.json",
		".esglens_last_scan.json",
		".esglens_audit.jsonl",
	}
}
