// SPDX-License-Identifier: GPL-2.0-or-later

package math

const (
	// Epsilon is the tolerance for plane side tests.
	Epsilon = float32(0.001)
	// SmallEpsilon is the tolerance for distances and colors that are
	// considered zero.
	SmallEpsilon = float32(0.000001)
)

func Abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
