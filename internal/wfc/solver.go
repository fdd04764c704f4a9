package wfc

import (
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

// ErrContradiction reports a cell left with no candidate patterns.
var ErrContradiction = errors.New("wfc: contradiction")

// Solver assembles a map from constrained chunks.
type Solver struct {
	constraints []MapChunk
	compat      [][4]bitset
	chunkSize   int
	width       int
	height      int
	chunksX     int
	chunksY     int
	attempts    int
	layout      []int

	// Observer, when set, receives the partially collapsed map after every collapse.
	Observer func(*world.Map)
	Logger   *zap.Logger
}

// NewSolver prepares a solver producing a width x height map. Columns and rows
// beyond the last whole chunk stay wall.
func NewSolver(constraints []MapChunk, chunkSize, width, height int) *Solver {
	n := len(constraints)
	compat := make([][4]bitset, n)
	for i := range constraints {
		for _, d := range Directions {
			b := newBitset(n)
			for _, j := range constraints[i].Compatible[d] {
				b.set(j)
			}
			compat[i][d] = b
		}
	}
	return &Solver{
		constraints: constraints,
		compat:      compat,
		chunkSize:   chunkSize,
		width:       width,
		height:      height,
		chunksX:     width / chunkSize,
		chunksY:     height / chunkSize,
		Logger:      zap.NewNop(),
	}
}

// Attempts returns how many solves have been started, including the successful one.
func (s *Solver) Attempts() int {
	return s.attempts
}

// Layout returns the pattern index chosen for each chunk cell of the last
// successful solve, row-major by chunk.
func (s *Solver) Layout() []int {
	return s.layout
}

// ChunksX returns the number of chunk columns.
func (s *Solver) ChunksX() int {
	return s.chunksX
}

// Solve runs attempts until one completes without contradiction. A
// contradiction throws the whole attempt away; the next attempt starts from
// scratch on the same random stream. There is no attempt limit.
func (s *Solver) Solve(rng *rand.Rand) *world.Map {
	if len(s.constraints) == 0 {
		return world.NewMap(s.width, s.height)
	}
	for {
		m, err := s.attempt(rng)
		if err == nil {
			return m
		}
		s.Logger.Info("wfc restart",
			zap.Int("attempt", s.attempts),
			zap.Error(err),
		)
	}
}

// SolveWithin is Solve with an attempt limit. It returns ErrContradiction
// when every attempt failed.
func (s *Solver) SolveWithin(rng *rand.Rand, maxAttempts int) (*world.Map, error) {
	if len(s.constraints) == 0 {
		return world.NewMap(s.width, s.height), nil
	}
	var err error
	for i := 0; i < maxAttempts; i++ {
		var m *world.Map
		if m, err = s.attempt(rng); err == nil {
			return m, nil
		}
	}
	return nil, err
}

func (s *Solver) attempt(rng *rand.Rand) (*world.Map, error) {
	s.attempts++
	n := len(s.constraints)
	cells := s.chunksX * s.chunksY
	wave := make([]bitset, cells)
	for i := range wave {
		wave[i] = fullBitset(n)
	}
	done := make([]bool, cells)

	for remaining := cells; remaining > 0; remaining-- {
		cell := s.lowestEntropy(rng, wave, done)
		options := wave[cell].members()
		choice := options[rng.Intn(len(options))]
		wave[cell] = newBitset(n)
		wave[cell].set(choice)
		done[cell] = true

		if err := s.propagate(wave, cell); err != nil {
			return nil, err
		}
		if s.Observer != nil {
			s.Observer(s.render(wave, done))
		}
	}

	s.layout = make([]int, cells)
	for i := range wave {
		s.layout[i] = wave[i].members()[0]
	}
	return s.render(wave, done), nil
}

// lowestEntropy picks the undecided cell with the fewest candidates, breaking
// ties at random.
func (s *Solver) lowestEntropy(rng *rand.Rand, wave []bitset, done []bool) int {
	best := -1
	var ties []int
	for i := range wave {
		if done[i] {
			continue
		}
		c := wave[i].count()
		switch {
		case best == -1 || c < best:
			best = c
			ties = append(ties[:0], i)
		case c == best:
			ties = append(ties, i)
		}
	}
	return ties[rng.Intn(len(ties))]
}

func (s *Solver) propagate(wave []bitset, from int) error {
	n := len(s.constraints)
	stack := []int{from}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := cell%s.chunksX, cell/s.chunksX

		for _, d := range Directions {
			dx, dy := d.Delta()
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= s.chunksX || ny < 0 || ny >= s.chunksY {
				continue
			}
			allowed := newBitset(n)
			for _, p := range wave[cell].members() {
				allowed.orWith(s.compat[p][d])
			}
			nb := ny*s.chunksX + nx
			if wave[nb].intersect(allowed) {
				if wave[nb].count() == 0 {
					return ErrContradiction
				}
				stack = append(stack, nb)
			}
		}
	}
	return nil
}

// render copies decided chunks onto a fresh wall map.
func (s *Solver) render(wave []bitset, done []bool) *world.Map {
	m := world.NewMap(s.width, s.height)
	for cell := range wave {
		if !done[cell] {
			continue
		}
		p := wave[cell].members()[0]
		cx, cy := cell%s.chunksX, cell/s.chunksX
		Stamp(m, s.constraints[p].Pattern, s.chunkSize, cx*s.chunkSize, cy*s.chunkSize)
	}
	return m
}
