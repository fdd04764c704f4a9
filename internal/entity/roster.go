package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samdwyer/mapforge/internal/gamedata"
)

// Roster collects the entities spawned onto one level. It satisfies
// builders.Materializer.
type Roster struct {
	registry *gamedata.EntityRegistry
	width    int
	entities []*Entity
	byIdx    map[int][]*Entity
}

// NewRoster creates an empty roster for a map of the given width.
func NewRoster(registry *gamedata.EntityRegistry, width int) *Roster {
	return &Roster{
		registry: registry,
		width:    width,
		byIdx:    make(map[int][]*Entity),
	}
}

// Materialize creates the entity named by key at tile index idx.
func (r *Roster) Materialize(idx int, key string) error {
	def := r.registry.Get(key)
	if def == nil {
		return fmt.Errorf("unknown entity key %q", key)
	}
	if idx < 0 || r.width <= 0 {
		return fmt.Errorf("invalid tile index %d for %q", idx, key)
	}
	e := NewEntity(def, idx%r.width, idx/r.width)
	r.entities = append(r.entities, e)
	r.byIdx[idx] = append(r.byIdx[idx], e)
	return nil
}

// Entities returns every entity in spawn order.
func (r *Roster) Entities() []*Entity {
	return r.entities
}

// At returns the entities standing at (x, y).
func (r *Roster) At(x, y int) []*Entity {
	return r.byIdx[y*r.width+x]
}

// Len returns the number of spawned entities.
func (r *Roster) Len() int {
	return len(r.entities)
}

// CountByKind tallies entities per kind.
func (r *Roster) CountByKind() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.entities {
		counts[e.Kind()]++
	}
	return counts
}

// Summary renders the kind counts in a stable order, e.g. "door:3 monster:5".
func (r *Roster) Summary() string {
	counts := r.CountByKind()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s:%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}
