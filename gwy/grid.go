package gwy

import (
	"math"
)

// checkExtent enforces the sampling invariants shared by all regular grids:
// at least one sample, and a finite physical extent that is positive
// whenever there is more than one sample.
func checkExtent(kind, resName, realName string, res int32, extent float64) error {
	if res < 1 {
		return badField(kind, resName, "resolution must be positive, got %d", res)
	}
	if math.IsNaN(extent) || math.IsInf(extent, 0) {
		return badField(kind, realName, "extent must be finite, got %v", extent)
	}
	if extent < 0 || (res > 1 && extent == 0) {
		return badField(kind, realName, "extent must be positive, got %v", extent)
	}
	return nil
}

// checkDataLen verifies that data holds exactly the product of resolutions.
func checkDataLen(kind string, have int, res ...int32) error {
	want := uint64(1)
	for _, r := range res {
		want *= uint64(r)
		if want > math.MaxUint32 {
			return badField(kind, "data", "resolution product exceeds the array size limit")
		}
	}
	if uint64(have) != want {
		return badField(kind, "data", "expected %d samples, got %d", want, have)
	}
	return nil
}

func toRes(kind, name string, v int) (int32, error) {
	if v < 1 || v > math.MaxInt32 {
		return 0, badField(kind, name, "resolution out of range: %d", v)
	}
	return int32(v), nil
}
