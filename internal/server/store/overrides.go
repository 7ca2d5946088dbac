// Package store persists the two interface override stores as flat
// key=value files.
package store

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/utils"
)

// TypeOverrideStore persists interface -> forced type mappings. The
// sentinel value DISABLED excludes a card; absence means "use the
// detected type".
type TypeOverrideStore struct {
	path   string
	logger *zap.Logger
}

// NewTypeOverrideStore creates a store backed by the given file.
func NewTypeOverrideStore(path string, logger *zap.Logger) *TypeOverrideStore {
	return &TypeOverrideStore{path: path, logger: logger}
}

// Load reads the override file. A missing file yields an empty map.
func (s *TypeOverrideStore) Load() map[string]string {
	overrides := make(map[string]string)
	content := utils.ReadFileString(s.path)
	for _, line := range strings.Split(content, "\n") {
		iface, value, ok := parseDirective(line)
		if !ok {
			continue
		}
		overrides[iface] = value
	}
	return overrides
}

// Save writes the override map back, creating parent directories as
// needed. Entries are written in sorted interface order for
// diff-stability.
func (s *TypeOverrideStore) Save(overrides map[string]string) error {
	var out strings.Builder
	out.WriteString("# OpenHD SysUtils Wi-Fi overrides\n")
	for _, iface := range sortedKeys(overrides) {
		fmt.Fprintf(&out, "%s=%s\n", iface, overrides[iface])
	}
	if err := utils.AtomicWriteFile(s.path, []byte(out.String()), 0644); err != nil {
		s.logger.Error("failed to write wifi overrides",
			zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}

// parseDirective splits one "key=value" line. Blank lines, comments and
// lines with an empty key or value are dropped.
func parseDirective(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:eq])
	value = strings.TrimSpace(line[eq+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
