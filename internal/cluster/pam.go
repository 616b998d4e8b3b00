package cluster

// pam2 is a small, deterministic FasterPAM-style k-medoids pass specialized
// to K=2: pick an initial medoid pair from a seeded pseudo-random draw, then
// swap medoids greedily while total cost improves. No library in the example
// corpus covers k-medoids, so this is hand-rolled (see DESIGN.md); the
// distance matrix itself is plain [][]float64 built from metrics.SeqSim.
func pam2(dist [][]float64, seed uint64) (int, int) {
	n := len(dist)
	if n < 2 {
		return 0, 0
	}
	rng := splitmix64(seed)
	m1 := int(rng() % uint64(n))
	m2 := int(rng() % uint64(n))
	for m2 == m1 {
		m2 = int(rng() % uint64(n))
	}

	cost := totalCost(dist, m1, m2)
	improved := true
	for improved {
		improved = false
		for cand := 0; cand < n; cand++ {
			if cand == m1 || cand == m2 {
				continue
			}
			if c := totalCost(dist, cand, m2); c < cost {
				cost, m1 = c, cand
				improved = true
				continue
			}
			if c := totalCost(dist, m1, cand); c < cost {
				cost, m2 = c, cand
				improved = true
			}
		}
	}
	return m1, m2
}

func totalCost(dist [][]float64, m1, m2 int) float64 {
	var total float64
	for i := range dist {
		d1, d2 := dist[i][m1], dist[i][m2]
		if d1 < d2 {
			total += d1
		} else {
			total += d2
		}
	}
	return total
}

func assignToMedoids(dist [][]float64, m1, m2 int) []int {
	assign := make([]int, len(dist))
	for i := range dist {
		if dist[i][m1] <= dist[i][m2] {
			assign[i] = 0
		} else {
			assign[i] = 1
		}
	}
	return assign
}

// splitmix64 returns a deterministic pseudo-random uint64 generator seeded
// by seed, used only to pick the initial medoid pair.
func splitmix64(seed uint64) func() uint64 {
	state := seed
	return func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}
}
