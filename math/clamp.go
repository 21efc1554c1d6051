// SPDX-License-Identifier: GPL-2.0-or-later

package math

type Number interface {
	int64 | float64 | float32 | int | uint32
}

func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// SaturatingAdd adds inc to the channel value c and clamps to 255.
func SaturatingAdd(c byte, inc int) byte {
	return byte(Clamp(0, int(c)+inc, 255))
}
