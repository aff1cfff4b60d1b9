package credentials

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

var (
	tokenKeyRe   = regexp.MustCompile(`LABELEER.*TOKEN$`)
	projectKeyRe = regexp.MustCompile(`LABELEER.*PROJECT_ID$`)
	safeValueRe  = regexp.MustCompile(`^[A-Za-z0-9._~+/=:-]+$`)
)

// Assignment is one KEY=VALUE line of an env file.
type Assignment struct {
	Key   string
	Value string
	Line  int // 1-based
}

// EnvFile holds the credential assignments found in one env file.
type EnvFile struct {
	Path       string
	Tokens     []Assignment
	ProjectIDs []Assignment
}

// ScanEnvFile reads path and collects credential assignments.
func ScanEnvFile(path string) (*EnvFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f := ParseEnv(data)
	f.Path = path
	return f, nil
}

// ParseEnv scans env file content line by line. Lines that do not parse
// as an assignment, or whose value contains characters outside the
// token-safe set, are ignored.
func ParseEnv(data []byte) *EnvFile {
	f := &EnvFile{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}

		// One line at a time so a broken line cannot hide the rest.
		kv, err := godotenv.Unmarshal(line)
		if err != nil {
			continue
		}
		for key, value := range kv {
			if !safeValueRe.MatchString(value) {
				continue
			}
			a := Assignment{Key: key, Value: value, Line: lineNo}
			switch {
			case tokenKeyRe.MatchString(key):
				f.Tokens = append(f.Tokens, a)
			case projectKeyRe.MatchString(key):
				f.ProjectIDs = append(f.ProjectIDs, a)
			}
		}
	}
	return f
}

// MaskKey returns a masked version of a token for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
