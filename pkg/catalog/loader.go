package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// File is the on-disk catalog format: a flat TOML list of products.
type File struct {
	Products []Product `toml:"products"`
}

// LoadFile reads and validates a TOML catalog file. Products without a name
// are skipped with a warning rather than failing the whole load.
func LoadFile(path string) ([]Product, error) {
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("catalog: decoding %s: %w", path, err)
	}

	products := make([]Product, 0, len(file.Products))
	for i, p := range file.Products {
		if p.Name == "" {
			log.Warnf("Skipping catalog entry %d: missing name", i)
			continue
		}
		products = append(products, p)
	}

	log.Debugf("Loaded %d products from %s", len(products), path)
	return products, nil
}
