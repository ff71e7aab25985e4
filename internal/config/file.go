package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDir = "tabsmith"

var configNames = []string{"config.yml", "config.yaml"}

// FindConfigPath looks for an existing config file in the usual locations and
// returns the first hit. When none exists it writes a default ./config.yml.
func FindConfigPath() string {
	candidates := searchPaths()
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	createPath := "./config.yml"
	if err := WriteDefault(createPath); err == nil {
		return createPath
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return createPath
}

func searchPaths() []string {
	var candidates []string
	for _, n := range configNames {
		candidates = append(candidates, "./"+n)
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			for _, n := range configNames {
				candidates = append(candidates, filepath.Join(appdata, appDir, n))
			}
		}
		if home != "" {
			for _, n := range configNames {
				candidates = append(candidates, filepath.Join(home, appDir, n))
			}
		}
		return candidates
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		for _, n := range configNames {
			candidates = append(candidates, filepath.Join(xdg, appDir, n))
		}
	}
	if home != "" {
		for _, n := range configNames {
			candidates = append(candidates, filepath.Join(home, ".config", appDir, n))
			candidates = append(candidates, filepath.Join(home, "."+appDir, n))
		}
	}
	for _, n := range configNames {
		candidates = append(candidates, filepath.Join("/etc", appDir, n))
	}
	return candidates
}

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string) error {
	b, err := yaml.Marshal(defaultTree())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out := append([]byte("# tabsmith configuration\n"), b...)
	return os.WriteFile(path, out, 0o644)
}

// defaultTree expands the flat default keys into nested maps.
func defaultTree() map[string]any {
	flat := defaults()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := map[string]any{}
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = flat[key]
	}
	return root
}
