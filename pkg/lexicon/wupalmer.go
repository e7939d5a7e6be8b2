package lexicon

// virtualRoot stands in for the shared root simulated above verb hierarchies.
const virtualRoot int32 = -1

// ancestors maps every hypernym ancestor of s, s included, to its shortest
// distance from s. With simulateRoot the virtual root sits one step above
// the nearest real root.
func (g *SenseGraph) ancestors(s int32, simulateRoot bool) map[int32]int {
	dist := map[int32]int{s: 0}
	frontier := []int32{s}
	rootDist := -1
	for d := 0; len(frontier) > 0; d++ {
		var next []int32
		for _, cur := range frontier {
			hypers := g.Synsets[cur].Hypernyms
			if len(hypers) == 0 && (rootDist < 0 || d < rootDist) {
				rootDist = d
			}
			for _, h := range hypers {
				if _, seen := dist[h]; !seen {
					dist[h] = d + 1
					next = append(next, h)
				}
			}
		}
		frontier = next
	}
	if simulateRoot {
		if rootDist < 0 {
			// every path loops; attach the root above s itself
			rootDist = 0
		}
		dist[virtualRoot] = rootDist + 1
	}
	return dist
}

func (g *SenseGraph) depthOf(s int32) int {
	if s == virtualRoot {
		return 0
	}
	return g.maxDepth[s]
}

// wuPalmer scores a against b. The subsumer is the deepest common ancestor;
// on ties a itself wins, then the lowest index, so the score is not
// symmetric. Relatedness takes the max of both directions.
func (g *SenseGraph) wuPalmer(a, b int32) float64 {
	pa, pb := g.Synsets[a].POS.base(), g.Synsets[b].POS.base()
	if pa != pb {
		return 0
	}
	simulate := pa == Verb
	da := g.ancestors(a, simulate)
	db := g.ancestors(b, simulate)

	subsumer, best := virtualRoot, -1
	found := false
	for anc := range da {
		if _, common := db[anc]; !common {
			continue
		}
		depth := g.depthOf(anc)
		if anc == virtualRoot {
			// real roots at the same depth win over the simulated one
			depth = -1
		}
		switch {
		case !found, depth > best:
		case depth == best && subsumer != a && (anc == a || anc < subsumer):
		default:
			continue
		}
		subsumer, best, found = anc, depth, true
	}
	if !found {
		return 0
	}

	depth := float64(g.depthOf(subsumer) + 1)
	l1 := float64(da[subsumer]) + depth
	l2 := float64(db[subsumer]) + depth
	return 2 * depth / (l1 + l2)
}

// Relatedness returns the best Wu-Palmer score over the two sense sets.
func (g *SenseGraph) Relatedness(as, bs []int32) float64 {
	best := 0.0
	for _, a := range as {
		for _, b := range bs {
			if a == b {
				return 1
			}
			if s := g.wuPalmer(a, b); s > best {
				best = s
			}
			if s := g.wuPalmer(b, a); s > best {
				best = s
			}
		}
	}
	return best
}
