package xlfd

import "fmt"
import "math"
import "strconv"
import "strings"

// Which scalable values were given explicitly in a name.
type Supplied uint8

const (
	PixelScalar Supplied = 1 << iota
	PixelArray
	PointScalar
	PointArray
	ResolutionSupplied
	WidthSupplied
)

// Scalable values of a font request. Matrices are [xx yx xy yy],
// in pixels and points respectively; Point and Width are given in
// tenths as in the name fields.
type Values struct {
	Pixel int
	Point int
	X, Y int
	Width int
	PixelMatrix [4]float64
	PointMatrix [4]float64
	Ranges []Range
	Supplied Supplied
}

// Extracts the scalable values from the name. Fields set to "0",
// "*" or empty are left unset; call [Values.Complete] to fill them.
func (self *Name) Values() (Values, error) {
	var values Values
	var err error
	if isMatrix(self.PixelSize) {
		values.PixelMatrix, err = parseMatrix(self.PixelSize)
		if err != nil { return values, err }
		values.Supplied |= PixelArray
	} else if n, ok := scalar(self.PixelSize); ok {
		values.Pixel = n
		values.PixelMatrix = [4]float64{float64(n), 0, 0, float64(n)}
		values.Supplied |= PixelScalar
	}
	if isMatrix(self.PointSize) {
		values.PointMatrix, err = parseMatrix(self.PointSize)
		if err != nil { return values, err }
		values.Supplied |= PointArray
	} else if n, ok := scalar(self.PointSize); ok {
		values.Point = n
		p := float64(n)/10.0
		values.PointMatrix = [4]float64{p, 0, 0, p}
		values.Supplied |= PointScalar
	}
	x, xok := scalar(self.ResolutionX)
	y, yok := scalar(self.ResolutionY)
	if xok || yok {
		if !xok { x = y }
		if !yok { y = x }
		values.X, values.Y = x, y
		values.Supplied |= ResolutionSupplied
	}
	if width, ok := signedScalar(self.AverageWidth); ok {
		values.Width = width
		values.Supplied |= WidthSupplied
	}
	values.Ranges, err = ParseRanges(self.Encoding)
	return values, err
}

// Fills in missing values: resolutions default to the given ones,
// point sizes derive from pixel sizes or the other way around, and
// when neither is given a 12 point size is assumed.
func (self *Values) Complete(defaultX, defaultY int) error {
	if self.X <= 0 || self.Y <= 0 {
		self.X, self.Y = defaultX, defaultY
	}
	if self.X <= 0 || self.Y <= 0 { return fmt.Errorf("xlfd: invalid resolution %dx%d", self.X, self.Y) }

	x, y := float64(self.X), float64(self.Y)
	havePixel := self.Supplied & (PixelScalar | PixelArray) != 0
	havePoint := self.Supplied & (PointScalar | PointArray) != 0
	switch {
	case havePixel && !havePoint:
		self.PointMatrix[0] = self.PixelMatrix[0]*72.27/x
		self.PointMatrix[1] = self.PixelMatrix[1]*72.27/y
		self.PointMatrix[2] = self.PixelMatrix[2]*72.27/x
		self.PointMatrix[3] = self.PixelMatrix[3]*72.27/y
	case !havePixel:
		if !havePoint { self.PointMatrix = [4]float64{12, 0, 0, 12} }
		self.PixelMatrix[0] = self.PointMatrix[0]*x/72.27
		self.PixelMatrix[1] = self.PointMatrix[1]*y/72.27
		self.PixelMatrix[2] = self.PointMatrix[2]*x/72.27
		self.PixelMatrix[3] = self.PointMatrix[3]*y/72.27
	}
	self.Pixel = int(math.Floor(math.Hypot(self.PixelMatrix[2], self.PixelMatrix[3]) + 0.5))
	self.Point = int(math.Floor(math.Hypot(self.PointMatrix[2], self.PointMatrix[3])*10 + 0.5))
	if self.Pixel <= 0 || math.Hypot(self.PointMatrix[2], self.PointMatrix[3]) == 0 {
		return fmt.Errorf("xlfd: degenerate size")
	}
	return nil
}

// Writes the values back into the numeric fields of the name,
// using the matrix forms only when the matrices aren't diagonal.
func (self *Name) SetValues(values *Values) {
	self.PixelSize = formatSize(values.PixelMatrix, values.Pixel)
	self.PointSize = formatSize(values.PointMatrix, values.Point)
	self.ResolutionX = strconv.Itoa(values.X)
	self.ResolutionY = strconv.Itoa(values.Y)
	self.AverageWidth = strconv.Itoa(values.Width)
	base, _, _ := strings.Cut(self.Encoding, "[")
	self.Encoding = base + FormatRanges(values.Ranges)
}

func formatSize(matrix [4]float64, scalar int) string {
	if matrix[1] == 0 && matrix[2] == 0 && matrix[0] == matrix[3] {
		return strconv.Itoa(scalar)
	}
	parts := make([]string, 4)
	for i, value := range matrix {
		str := strconv.FormatFloat(value, 'f', -1, 64)
		parts[i] = strings.Replace(str, "-", "~", 1)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func isMatrix(field string) bool { return strings.HasPrefix(field, "[") }

func scalar(field string) (int, bool) {
	n, err := strconv.Atoi(field)
	if err != nil || n <= 0 { return 0, false }
	return n, true
}

func signedScalar(field string) (int, bool) {
	n, err := strconv.Atoi(strings.Replace(field, "~", "-", 1))
	if err != nil || n == 0 { return 0, false }
	return n, true
}

func parseMatrix(field string) ([4]float64, error) {
	var matrix [4]float64
	if !strings.HasSuffix(field, "]") { return matrix, ErrMalformed }
	parts := strings.Fields(field[1 : len(field) - 1])
	if len(parts) != 4 { return matrix, ErrMalformed }
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.ReplaceAll(part, "~", "-"), 64)
		if err != nil { return matrix, ErrMalformed }
		matrix[i] = value
	}
	return matrix, nil
}
