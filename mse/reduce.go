package mse

// flushInterval is the number of bulk steps a 32-bit lane may absorb before it
// has to be drained into the 64-bit accumulator. Each step adds at most
// maxWordSquare to a lane.
const flushInterval = 8192

// reduceLanes returns the sum of all partial lane sums and clears the lanes.
func reduceLanes(lanes []uint32) uint64 {
	var sum uint64
	for i, v := range lanes {
		sum += uint64(v)
		lanes[i] = 0
	}
	return sum
}
