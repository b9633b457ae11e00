package font

import "bytes"
import "encoding/binary"
import "fmt"

import "seehuhn.de/go/sfnt/post"

func be16(data []byte, offset int) uint16 { return binary.BigEndian.Uint16(data[offset:]) }
func be32(data []byte, offset int) uint32 { return binary.BigEndian.Uint32(data[offset:]) }

func errMalformed(tag string) error {
	return fmt.Errorf("font: malformed %q table", tag)
}

// The fields of the OS/2 table used for font properties and for
// encoding detection. Versions 0 to 5 share this prefix.
type OS2 struct {
	Version uint16
	XAvgCharWidth int16
	WeightClass uint16
	WidthClass uint16
	FsType uint16
	SubscriptXSize int16
	SubscriptYSize int16
	SubscriptXOffset int16
	SubscriptYOffset int16
	SuperscriptXSize int16
	SuperscriptYSize int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize int16
	StrikeoutPosition int16
	FamilyClass int16
	Panose [10]byte
	UnicodeRange [4]uint32
	VendorID [4]byte
	FsSelection uint16
	FirstCharIndex uint16
	LastCharIndex uint16
}

// Reads the OS/2 table of the face. Returns [ErrNoTable] if the
// face has none.
func ReadOS2(face Face) (*OS2, error) {
	data, err := face.Table("OS/2")
	if err != nil { return nil, err }
	if len(data) < 68 { return nil, errMalformed("OS/2") }

	var table OS2
	err = binary.Read(bytes.NewReader(data[:68]), binary.BigEndian, &table)
	if err != nil { return nil, err }
	return &table, nil
}

// Reads the post table of the face, including its glyph names when
// present. Returns [ErrNoTable] if the face has none.
func ReadPost(face Face) (*post.Info, error) {
	data, err := face.Table("post")
	if err != nil { return nil, err }
	return post.Read(bytes.NewReader(data))
}

// Returns the numberOfHMetrics field of the hhea table.
func NumHMetrics(face Face) (int, error) {
	data, err := face.Table("hhea")
	if err != nil { return 0, err }
	if len(data) < 36 { return 0, errMalformed("hhea") }
	return int(be16(data, 34)), nil
}

// Reads the advance width and left side bearing of the given glyph
// directly from the hmtx table, in font units. Glyphs past the last
// long metric reuse its advance.
func HorizontalMetric(face Face, index GlyphIndex, numHMetrics int) (advance int, lsb int, err error) {
	if numHMetrics <= 0 { return 0, 0, errMalformed("hhea") }
	data, err := face.Table("hmtx")
	if err != nil { return 0, 0, err }
	if len(data) < numHMetrics*4 { return 0, 0, errMalformed("hmtx") }

	i := int(index)
	if i < numHMetrics {
		return int(be16(data, i*4)), int(int16(be16(data, i*4 + 2))), nil
	}
	advance = int(be16(data, (numHMetrics - 1)*4))
	offset := numHMetrics*4 + (i - numHMetrics)*2
	if offset + 2 > len(data) { return advance, 0, nil }
	return advance, int(int16(be16(data, offset))), nil
}
