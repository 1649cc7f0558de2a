package analyzer

// Direction is the orientation a dataflow analysis iterates in: forward
// analyses flow IN from predecessors to OUT at successors; backward
// analyses flow IN from successors to OUT at predecessors.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Lattice is the capability set the fixed-point driver is generic over:
// a bottom element, an equality test for detecting convergence, a
// per-block transfer function, an n-ary join, and a direction. Set
// lattices (must/may) and the three-valued zero-state map both
// implement it; only the concrete State type differs.
type Lattice[S any] interface {
	Bottom() S
	Equal(a, b S) bool
	Transfer(block *BasicBlock, in S) S
	Join(states []S) S
	Direction() Direction
}

// EdgeRefiner is implemented by lattices that need path-sensitive
// strengthening of a predecessor's state before it is joined in — only
// the zero-state analysis needs this. Lattices that don't implement it
// are joined with no refinement.
type EdgeRefiner[S any] interface {
	RefineEdge(state S, edge Edge) S
}

// Seeder is implemented by lattices with non-bottom initial conditions
// for specific blocks — definite-assignment seeds IN[entry] with the
// parameter set and IN[b != entry] with the universe.
type Seeder[S any] interface {
	// Seed seeds the forward IN (or backward OUT) map before the
	// first iteration. Blocks absent from the returned map start at
	// Bottom.
	Seed(cfg *CFG) map[BlockID]S
}

// Result holds the converged IN/OUT fact stores for every block.
type Result[S any] struct {
	In  map[BlockID]S
	Out map[BlockID]S
}

// RunFixedPoint iterates transfer/join to a fixed point over cfg using
// lat, sweeping every block in id order (round-robin) until a full sweep
// changes no fact: monotone transfers over a finite lattice terminate.
func RunFixedPoint[S any](cfg *CFG, lat Lattice[S]) Result[S] {
	in := make(map[BlockID]S, len(cfg.Blocks))
	out := make(map[BlockID]S, len(cfg.Blocks))
	seeded := make(map[BlockID]bool)
	for _, b := range cfg.Blocks {
		in[b.ID] = lat.Bottom()
		out[b.ID] = lat.Bottom()
	}
	if seeder, ok := lat.(Seeder[S]); ok {
		for id, s := range seeder.Seed(cfg) {
			seeded[id] = true
			if lat.Direction() == Forward {
				in[id] = s
			} else {
				out[id] = s
			}
		}
	}

	refiner, refines := lat.(EdgeRefiner[S])
	forward := lat.Direction() == Forward

	changed := true
	for changed {
		changed = false
		for _, b := range cfg.Blocks {
			if forward {
				if preds := cfg.EdgesTo(b.ID); len(preds) > 0 {
					in[b.ID] = joinEdges(lat, refiner, refines, preds, out, true)
				} else if !seeded[b.ID] {
					in[b.ID] = lat.Bottom()
				}
				// else: no predecessors and seeded — IN is left
				// untouched.

				newOut := lat.Transfer(b, in[b.ID])
				if !lat.Equal(newOut, out[b.ID]) {
					out[b.ID] = newOut
					changed = true
				}
			} else {
				if succs := cfg.EdgesFrom(b.ID); len(succs) > 0 {
					out[b.ID] = joinEdges(lat, refiner, refines, succs, in, false)
				} else if !seeded[b.ID] {
					out[b.ID] = lat.Bottom()
				}

				newIn := lat.Transfer(b, out[b.ID])
				if !lat.Equal(newIn, in[b.ID]) {
					in[b.ID] = newIn
					changed = true
				}
			}
		}
	}

	return Result[S]{In: in, Out: out}
}

// joinEdges joins the neighbor fact named by each edge: for a forward
// join over predecessor edges, neighborFacts is OUT and the neighbor is
// edge.From; for a backward join over successor edges, neighborFacts is
// IN and the neighbor is edge.To. Conditional edges are refined first
// when the lattice supports it.
func joinEdges[S any](lat Lattice[S], refiner EdgeRefiner[S], refines bool, edges []Edge, neighborFacts map[BlockID]S, forward bool) S {
	states := make([]S, 0, len(edges))
	for _, e := range edges {
		var neighbor BlockID
		if forward {
			neighbor = e.From
		} else {
			neighbor = e.To
		}
		s := neighborFacts[neighbor]
		if refines && e.HasCond {
			s = refiner.RefineEdge(s, e)
		}
		states = append(states, s)
	}
	return lat.Join(states)
}
