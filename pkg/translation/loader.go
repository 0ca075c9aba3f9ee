package translation

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalogFS walks fsys and loads every `<domain>.<locale>.(yaml|yml|json)`
// file into a new catalog.
func LoadCatalogFS(fsys fs.FS, opts ...CatalogOption) (*Catalog, error) {
	catalog := NewCatalog(opts...)
	if err := catalog.LoadFS(fsys); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFS merges catalog files found in fsys. A nil filesystem is a no-op.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		domain, locale, ok := parseCatalogName(name)
		if !ok {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("translation: read %s: %w", name, err)
		}
		messages, err := parseMessages(data, name)
		if err != nil {
			return err
		}
		c.Add(locale, domain, messages)
		return nil
	})
}

func parseCatalogName(name string) (domain, locale string, ok bool) {
	base := path.Base(name)
	ext := strings.ToLower(path.Ext(base))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return "", "", false
	}
	stem := strings.TrimSuffix(base, path.Ext(base))
	idx := strings.LastIndex(stem, ".")
	if idx <= 0 || idx == len(stem)-1 {
		return "", "", false
	}
	return stem[:idx], stem[idx+1:], true
}

func parseMessages(data []byte, source string) (map[string]any, error) {
	messages := make(map[string]any)
	if len(strings.TrimSpace(string(data))) == 0 {
		return messages, nil
	}
	if err := json.Unmarshal(data, &messages); err == nil {
		return messages, nil
	}
	messages = make(map[string]any)
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("translation: parse %s: invalid JSON or YAML", source)
	}
	return messages, nil
}
