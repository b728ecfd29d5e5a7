package param

// Point is one automation point: a normalized value taking effect at a
// sample offset inside the current block.
type Point struct {
	Offset int
	Value  float64
}

// Queue holds the points of one parameter for one block, in offset order.
type Queue struct {
	ID     uint32
	Points []Point
}

// Changes are the parameter queues delivered with a block.
type Changes []Queue

// Resolve applies the last point of every queue to s. This collapses all
// changes inside a block onto the whole block.
func (c Changes) Resolve(s *Snapshot) {
	for _, q := range c {
		if len(q.Points) == 0 {
			continue
		}
		s.Set(q.ID, q.Points[len(q.Points)-1].Value)
	}
}

// Walk splits [0, numSamples) into runs over which no parameter changes and
// calls fn for each run with the values in effect. A point at offset k takes
// effect from sample k. Walk returns the values after the whole block, which
// match Resolve.
func (c Changes) Walk(numSamples int, s Snapshot, fn func(start, end int, s Snapshot)) Snapshot {
	start := 0
	for start < numSamples {
		end := numSamples
		for _, q := range c {
			for _, p := range q.Points {
				if p.Offset <= start {
					s.Set(q.ID, p.Value)
					continue
				}
				if p.Offset < end {
					end = p.Offset
				}
				break
			}
		}
		fn(start, end, s)
		start = end
	}
	c.Resolve(&s)
	return s
}
