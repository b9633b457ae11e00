package mask

// Copies the source bitmap into the destination raster, with the
// source top-left pixel landing at (dx, dy). The horizontal offset
// can be any value, including negative ones and non multiples of 8:
// rows are shifted across byte boundaries as needed. Copying stops
// at the source or destination bounds, and bits are ORed into the
// destination.
func Blit(dst []byte, bytesPerRow, rows int, src *Bitmap, dx, dy int) {
	var divDx, modDx0, modDx1 int
	if dx >= 0 {
		divDx  = dx/8
		modDx0 = dx%8
		modDx1 = 8 - modDx0
	} else {
		divDx  = dx/8 - 1
		modDx1 = (-dx)%8
		modDx0 = 8 - modDx1
	}

	for i := max(0, dy); i < rows; i++ {
		if i - dy >= src.Rows { break }
		srcRow := src.Buffer[src.Pitch*(i - dy):]
		dstRow := dst[i*bytesPerRow : (i + 1)*bytesPerRow]
		j := max(0, divDx)
		jj := j - divDx
		prevJJ := jj - 1
		if j >= bytesPerRow { continue }
		if prevJJ >= 0 && prevJJ < src.Pitch {
			dstRow[j] |= srcRow[prevJJ] << modDx1
		}
		if jj < 0 || jj >= src.Pitch { continue }
		dstRow[j] |= srcRow[jj] >> modDx0
		j, prevJJ, jj = j + 1, prevJJ + 1, jj + 1
		for ; j < bytesPerRow; j, prevJJ, jj = j + 1, prevJJ + 1, jj + 1 {
			dstRow[j] |= srcRow[prevJJ] << modDx1
			if jj >= src.Pitch { break }
			dstRow[j] |= srcRow[jj] >> modDx0
		}
	}
}
