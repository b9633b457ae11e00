package mask

import "math/bits"

// Reverses the bit order of every byte in the buffer, converting
// between most and least significant bit first layouts.
func ReverseBits(buffer []byte) {
	for i, b := range buffer {
		buffer[i] = bits.Reverse8(b)
	}
}

// Swaps the bytes of each 16-bit unit. A trailing odd byte is
// left untouched.
func SwapTwoBytes(buffer []byte) {
	for i := 0; i + 1 < len(buffer); i += 2 {
		buffer[i], buffer[i + 1] = buffer[i + 1], buffer[i]
	}
}

// Reverses the bytes of each 32-bit unit. Trailing bytes that
// don't complete a unit are left untouched.
func SwapFourBytes(buffer []byte) {
	for i := 0; i + 3 < len(buffer); i += 4 {
		buffer[i], buffer[i + 3] = buffer[i + 3], buffer[i]
		buffer[i + 1], buffer[i + 2] = buffer[i + 2], buffer[i + 1]
	}
}
