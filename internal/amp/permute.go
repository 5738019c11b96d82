package amp

// Permutations calls each with every ordering of alphabet, as generated by
// Heap's algorithm, stopping early if each returns false. The first ordering
// is alphabet itself.
//
// The slice passed to each is reused between calls; copy it to keep it.
func Permutations(alphabet []int64, each func(perm []int64) bool) {
	perm := append([]int64(nil), alphabet...)
	if !each(perm) {
		return
	}
	c := make([]int, len(perm))
	for i := 0; i < len(perm); {
		if c[i] >= i {
			c[i] = 0
			i++
			continue
		}
		if i%2 == 0 {
			perm[0], perm[i] = perm[i], perm[0]
		} else {
			perm[c[i]], perm[i] = perm[i], perm[c[i]]
		}
		if !each(perm) {
			return
		}
		c[i]++
		i = 0
	}
}
