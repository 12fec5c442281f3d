// Package landmarks holds the placeholder points of interest used when no real
// places are known for a destination.
package landmarks

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

//go:embed catalog.yml
var embeddedCatalog []byte

const cityToken = "{city}"

type template struct {
	Name       string   `yaml:"name"`
	Location   string   `yaml:"location"`
	Rating     float64  `yaml:"rating"`
	Categories []string `yaml:"categories"`
}

type cityEntry struct {
	Landmarks   string `yaml:"landmarks"`
	Restaurants string `yaml:"restaurants"`
}

type catalogFile struct {
	DefaultRegion      string                `yaml:"defaultRegion"`
	DefaultRestaurants string                `yaml:"defaultRestaurants"`
	Cities             map[string]cityEntry  `yaml:"cities"`
	Regions            map[string][]template `yaml:"regions"`
	Restaurants        map[string][]template `yaml:"restaurants"`
}

// Catalog maps a city to a region code and a region code to a template set.
// It is read-only after Parse returns.
type Catalog struct {
	file catalogFile
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedCatalog)
})

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("landmarks: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse builds a catalog from yaml, checking that every referenced set exists.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(f.Regions[f.DefaultRegion]) == 0 {
		return nil, fmt.Errorf("default region %q has no landmarks", f.DefaultRegion)
	}
	if len(f.Restaurants[f.DefaultRestaurants]) == 0 {
		return nil, fmt.Errorf("default restaurant set %q is empty", f.DefaultRestaurants)
	}

	cities := make(map[string]cityEntry, len(f.Cities))
	for name, entry := range f.Cities {
		if _, ok := f.Regions[entry.Landmarks]; entry.Landmarks != "" && !ok {
			return nil, fmt.Errorf("city %q references unknown region %q", name, entry.Landmarks)
		}
		if _, ok := f.Restaurants[entry.Restaurants]; entry.Restaurants != "" && !ok {
			return nil, fmt.Errorf("city %q references unknown restaurant set %q", name, entry.Restaurants)
		}
		cities[normalize(name)] = entry
	}
	f.Cities = cities

	return &Catalog{file: f}, nil
}

// Region returns the landmark region code for city.
func (c *Catalog) Region(city string) string {
	if e, ok := c.file.Cities[normalize(city)]; ok && e.Landmarks != "" {
		return e.Landmarks
	}
	return c.file.DefaultRegion
}

func (c *Catalog) restaurantSet(city string) string {
	if e, ok := c.file.Cities[normalize(city)]; ok && e.Restaurants != "" {
		return e.Restaurants
	}
	return c.file.DefaultRestaurants
}

// Landmarks returns the placeholder attractions for city with the name filled in.
func (c *Catalog) Landmarks(city string) []types.Place {
	return render(c.file.Regions[c.Region(city)], city)
}

// Restaurants returns the placeholder restaurants for city with the name filled in.
func (c *Catalog) Restaurants(city string) []types.Place {
	return render(c.file.Restaurants[c.restaurantSet(city)], city)
}

func render(templates []template, city string) []types.Place {
	city = strings.TrimSpace(city)
	places := make([]types.Place, 0, len(templates))
	for _, t := range templates {
		places = append(places, types.Place{
			Name:       strings.ReplaceAll(t.Name, cityToken, city),
			Location:   strings.ReplaceAll(t.Location, cityToken, city),
			Rating:     t.Rating,
			Categories: append([]string(nil), t.Categories...),
		})
	}
	return places
}

// normalize lowercases the city and drops any ", country" suffix.
func normalize(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if i := strings.IndexByte(city, ','); i >= 0 {
		city = strings.TrimSpace(city[:i])
	}
	return strings.Join(strings.Fields(city), " ")
}
