// Package resources provides the read-only resource catalog: which goods
// exist in the world and what their base unit price is.
package resources

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownResource is returned when a price lookup names a resource the
// catalog does not carry.
var ErrUnknownResource = errors.New("unknown resource")

// Catalog maps resource keys to base unit prices in coins.
type Catalog struct {
	prices map[string]int
}

// Default returns the built-in catalog used when no catalog file is supplied.
func Default() *Catalog {
	return &Catalog{prices: map[string]int{
		"grain":   2,
		"fish":    2,
		"wood":    5,
		"stone":   4,
		"clay":    3,
		"coal":    8,
		"iron":    10,
		"copper":  9,
		"salt":    15,
		"cloth":   16,
		"tools":   18,
		"wine":    20,
		"weapons": 30,
		"spices":  45,
		"gems":    50,
	}}
}

// FromPrices builds a catalog from an explicit price table. Entries with a
// non-positive price are dropped.
func FromPrices(prices map[string]int) *Catalog {
	c := &Catalog{prices: make(map[string]int, len(prices))}
	for key, price := range prices {
		if key == "" || price <= 0 {
			continue
		}
		c.prices[key] = price
	}
	return c
}

// Load reads a catalog from a YAML file of the form `resource: price`.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var prices map[string]int
	if err := yaml.Unmarshal(raw, &prices); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("catalog %s: no resources defined", path)
	}
	return FromPrices(prices), nil
}

// Exists reports whether the catalog carries the given resource.
func (c *Catalog) Exists(key string) bool {
	_, ok := c.prices[key]
	return ok
}

// BasePrice returns the base unit price of a resource.
func (c *Catalog) BasePrice(key string) (int, error) {
	price, ok := c.prices[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownResource, key)
	}
	return price, nil
}

// Len returns the number of resources in the catalog.
func (c *Catalog) Len() int {
	return len(c.prices)
}
