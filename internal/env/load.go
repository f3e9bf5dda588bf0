package env

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prefix is the namespace of the variables the demo reads.
const Prefix = "GLASS_ROOM_"

// Parse reads KEY=VALUE lines. Empty lines and lines starting with # are skipped, an
// optional "export " is dropped and matching surrounding quotes are removed from values.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("env: line %d: expected KEY=VALUE", n)
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		vars[key] = value
	}
	return vars, scanner.Err()
}

// Load reads the given file (e.g. ".env") and sets each variable that is not already set
// in the process environment. The file may be missing; that is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	vars, err := Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); !set {
			_ = os.Setenv(k, v)
		}
	}
	return nil
}

// Get returns the value of Prefix+name, or def when it is unset or empty.
func Get(name, def string) string {
	if v := os.Getenv(Prefix + name); v != "" {
		return v
	}
	return def
}
