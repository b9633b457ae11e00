package mask

// A monochrome glyph bitmap. Bits are stored most significant bit
// first, one row every Pitch bytes. Left and Top give the position
// of the top-left pixel relative to the glyph origin, with Top
// growing upwards (a Top of 10 means the first row sits 10 pixels
// above the baseline).
type Bitmap struct {
	Width int
	Rows int
	Pitch int
	Buffer []byte
	Left int
	Top int
}

// Creates a zeroed bitmap of the given size with the minimum pitch.
func NewBitmap(width, rows int) *Bitmap {
	pitch := (width + 7) >> 3
	return &Bitmap{
		Width: width,
		Rows: rows,
		Pitch: pitch,
		Buffer: make([]byte, pitch*rows),
	}
}

// Returns whether the pixel at the given position is set. Out
// of bounds positions are reported as unset.
func (self *Bitmap) Bit(x, y int) bool {
	if x < 0 || y < 0 || x >= self.Width || y >= self.Rows { return false }
	return self.Buffer[y*self.Pitch + (x >> 3)] & (0x80 >> (x & 7)) != 0
}

// Sets the pixel at the given position. Out of bounds positions
// are ignored.
func (self *Bitmap) SetBit(x, y int) {
	if x < 0 || y < 0 || x >= self.Width || y >= self.Rows { return }
	self.Buffer[y*self.Pitch + (x >> 3)] |= 0x80 >> (x & 7)
}

// Returns whether no pixel is set.
func (self *Bitmap) Blank() bool {
	for _, b := range self.Buffer {
		if b != 0 { return false }
	}
	return true
}

// Returns a textual rendering of the given raster, using '#' for set
// bits and '.' for unset ones. Each row shows bytesPerRow*8 bits.
// Mostly useful for debugging and tests.
func RasterString(raster []byte, bytesPerRow, rows int) string {
	out := make([]byte, 0, (bytesPerRow*8 + 1)*rows)
	for y := 0; y < rows; y++ {
		for _, b := range raster[y*bytesPerRow : (y + 1)*bytesPerRow] {
			for bit := 7; bit >= 0; bit-- {
				if b & (1 << bit) != 0 {
					out = append(out, '#')
				} else {
					out = append(out, '.')
				}
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
