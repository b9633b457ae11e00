package mask

// Pseudo-bolds the raster by ORing each row with a copy of itself
// shifted one pixel to the right. With edgeLeft, pixels that would
// join two strokes separated by a single gap are left unset, so
// counters don't close up.
func Embolden(raster []byte, bytesPerRow, rows int, edgeLeft bool) {
	for y := 0; y < rows; y++ {
		row := raster[y*bytesPerRow : (y + 1)*bytesPerRow]
		var lsb byte
		if !edgeLeft {
			for x := range row {
				tmp := row[x] << 7
				row[x] |= (row[x] >> 1) | lsb
				lsb = tmp
			}
			continue
		}

		var revPat byte
		for x := range row {
			tmp := row[x] << 7
			if revPat & 0x01 != 0 && row[x] & 0x80 != 0 {
				row[x - 1] &= 0xFE
			}
			revPat = ^row[x]
			row[x] |= (row[x] >> 1) | lsb
			row[x] &= ^(revPat & (row[x] << 1))
			lsb = tmp
		}
	}
}

// Shears the raster horizontally to fake an italic style. Row y is
// shifted by shift*(totalHeight - 1 - (y + offset))/totalHeight pixels,
// to the right for positive values. A negative direction mirrors the
// shift. Shifts of 8 pixels or more move the row by a single byte
// on top of the sub-byte shift.
func Shear(raster []byte, bytesPerRow, rows int, shift, totalHeight, offset int, direction float64) {
	if totalHeight == 0 { return }
	if direction < 0 { shift = -shift }
	for y := 0; y < rows; y++ {
		row := raster[y*bytesPerRow : (y + 1)*bytesPerRow]
		rowShift := shift*(totalHeight - 1 - (y + offset))/totalHeight
		if rowShift >= 0 {
			byteShift := rowShift/8
			rowShift %= 8
			if rowShift != 0 {
				for x := bytesPerRow - 1; x >= 0; x-- {
					if x != bytesPerRow - 1 {
						row[x + 1] |= row[x] << (8 - rowShift)
					}
					row[x] >>= rowShift
				}
			}
			if byteShift != 0 && bytesPerRow > 0 {
				copy(row[1:], row[:bytesPerRow - 1])
				row[0] = 0
			}
		} else {
			rowShift = -rowShift
			byteShift := rowShift/8
			rowShift %= 8
			if rowShift != 0 {
				for x := 0; x < bytesPerRow; x++ {
					if x != 0 {
						row[x - 1] |= row[x] >> (8 - rowShift)
					}
					row[x] <<= rowShift
				}
			}
			if byteShift != 0 && bytesPerRow > 0 {
				copy(row, row[1:])
				row[bytesPerRow - 1] = 0
			}
		}
	}
}
