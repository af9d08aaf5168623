package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
)

func lookupEnv(key string) string {
	v, _ := os.LookupEnv(key)
	return v
}

// missingKeys returns the keys that are unset or empty.
func missingKeys(keys []string) []string {
	var missing []string
	for _, k := range keys {
		if lookupEnv(k) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// fillUnset sets every variable in values that the process does not already
// have, returning the names it set in sorted order.
func fillUnset(values map[string]string) ([]string, error) {
	var set []string
	for k, v := range values {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return set, fmt.Errorf("set %s: %w", k, err)
		}
		set = append(set, k)
	}
	sort.Strings(set)
	return set, nil
}

// findEnvFile searches the working directory and its parents for filename.
func findEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}
	curr, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(curr, filename)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			return "", os.ErrNotExist
		}
		curr = parent
	}
}

func maskValue(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}

// maskURL hides the password of a connection URL.
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return maskValue(raw)
	}
	return u.Redacted()
}
