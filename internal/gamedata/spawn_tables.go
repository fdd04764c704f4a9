package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// SpawnEntry is one weighted row of a spawn table.
type SpawnEntry struct {
	Key      string `yaml:"key"`
	Weight   int    `yaml:"weight"`
	MinDepth int    `yaml:"min_depth"`
	MaxDepth int    `yaml:"max_depth"`
}

// SpawnTables holds the named tables from spawn_tables.yaml.
type SpawnTables struct {
	Tables map[string][]SpawnEntry `yaml:"tables"`
}

// LoadSpawnTables loads the embedded spawn tables.
func LoadSpawnTables() (*SpawnTables, error) {
	t, err := Load[SpawnTables]("spawn_tables.yaml")
	if err != nil {
		return nil, err
	}
	if len(t.Tables) == 0 {
		return nil, errors.New("no spawn tables loaded from spawn_tables.yaml")
	}
	for name, entries := range t.Tables {
		for _, e := range entries {
			if e.Weight < 0 {
				return nil, fmt.Errorf("table %s entry %q has negative weight", name, e.Key)
			}
		}
	}
	return &t, nil
}

// MustLoadSpawnTables loads the spawn tables, panicking on error.
func MustLoadSpawnTables() *SpawnTables {
	t, err := LoadSpawnTables()
	if err != nil {
		panic(err)
	}
	return t
}

func (e SpawnEntry) allowed(band int) bool {
	return band == 0 || (band >= e.MinDepth && band <= e.MaxDepth)
}

// Roll picks a key from the named table using weighted probability. Only
// entries allowed in band take part. An unknown table, or one with no
// eligible weight, rolls the empty key.
func (s *SpawnTables) Roll(rng *rand.Rand, table string, band int) string {
	entries := s.Tables[table]
	total := 0
	for _, e := range entries {
		if e.allowed(band) {
			total += e.Weight
		}
	}
	if total <= 0 {
		return ""
	}

	roll := rng.Intn(total)
	cumulative := 0
	for _, e := range entries {
		if !e.allowed(band) {
			continue
		}
		cumulative += e.Weight
		if roll < cumulative {
			return e.Key
		}
	}
	return ""
}

// Keys returns every non-empty key that a table can roll.
func (s *SpawnTables) Keys(table string) []string {
	var keys []string
	for _, e := range s.Tables[table] {
		if e.Key != "" {
			keys = append(keys, e.Key)
		}
	}
	return keys
}
