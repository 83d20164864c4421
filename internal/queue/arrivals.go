package queue

// DeriveArrivals converts inter-arrival gaps into absolute arrival times.
// Element i is the sum of gaps[0..i].
func DeriveArrivals(gaps []int) []int {
	arrivals := make([]int, len(gaps))
	clock := 0
	for i, g := range gaps {
		clock += g
		arrivals[i] = clock
	}
	return arrivals
}
