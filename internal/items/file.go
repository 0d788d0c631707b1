package items

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/marcus/sortable/internal/models"
	"gopkg.in/yaml.v3"
)

// Load reads items from a JSON or YAML file (chosen by extension). The file
// holds a list of {id, title, checked, order} records. Duplicate IDs are
// rejected; orders are normalized by the caller via New or Replace.
func Load(path string) ([]models.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []models.Item
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(list))
	for i, it := range list {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("%s: item %d has no id", path, i)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("%s: duplicate id %q", path, it.ID)
		}
		seen[it.ID] = true
	}
	return list, nil
}

// Encode renders items as indented JSON
func Encode(items []models.Item) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}
