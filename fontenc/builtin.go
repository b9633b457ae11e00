package fontenc

import "unicode/utf8"

import "golang.org/x/text/encoding"
import "golang.org/x/text/encoding/charmap"
import "golang.org/x/text/encoding/japanese"
import "golang.org/x/text/encoding/korean"
import "golang.org/x/text/encoding/simplifiedchinese"
import "golang.org/x/text/encoding/traditionalchinese"
import "seehuhn.de/go/postscript/psenc"

// Recodes through an 8 bit charmap, giving 0 for unassigned codes.
func charmapRecode(table *charmap.Charmap) func(uint32) uint32 {
	return func(code uint32) uint32 {
		if code > 0xFF { return 0 }
		r := table.DecodeByte(byte(code))
		if r == utf8.RuneError { return 0 }
		return uint32(r)
	}
}

// Like charmapRecode, but with some codes replaced.
func patchedRecode(table *charmap.Charmap, patch map[uint32]uint32) func(uint32) uint32 {
	base := charmapRecode(table)
	return func(code uint32) uint32 {
		if r, found := patch[code]; found { return r }
		return base(code)
	}
}

// Recodes from an ISO 8859 charset into a Macintosh charset. The
// C1 range has no counterpart.
func appleRecode(iso, apple *charmap.Charmap) func(uint32) uint32 {
	return func(code uint32) uint32 {
		if code <= 0x80 { return code }
		if code < 0xA0 || code > 0xFF { return 0 }
		r := iso.DecodeByte(byte(code))
		if r == utf8.RuneError { return 0 }
		b, ok := apple.EncodeRune(r)
		if !ok { return 0 }
		return uint32(b)
	}
}

// Recodes a two byte code by decoding the given byte sequence
// through a multibyte text encoding.
func multibyteRecode(enc encoding.Encoding, toBytes func(code uint32) []byte) func(uint32) uint32 {
	return func(code uint32) uint32 {
		decoded, err := enc.NewDecoder().Bytes(toBytes(code))
		if err != nil { return 0 }
		r, size := utf8.DecodeRune(decoded)
		if r == utf8.RuneError || size != len(decoded) { return 0 }
		return uint32(r)
	}
}

// GL codes of 94x94 sets go through their EUC form.
func eucBytes(code uint32) []byte {
	return []byte{ byte(code >> 8) | 0x80, byte(code) | 0x80 }
}

func rawBytes(code uint32) []byte {
	return []byte{ byte(code >> 8), byte(code) }
}

var koi8rRecode = charmapRecode(charmap.KOI8R)

var koi8ruPatch = map[uint32]uint32{
	0x93: 0x201C, 0x96: 0x201D, 0x97: 0x2014, 0x98: 0x2116,
	0x99: 0x2122, 0x9B: 0x00BB, 0x9C: 0x00AE, 0x9D: 0x00AB,
	0x9F: 0x00A4, 0xA4: 0x0454, 0xA6: 0x0456, 0xA7: 0x0457,
	0xAD: 0x0491, 0xAE: 0x045E, 0xB4: 0x0404, 0xB6: 0x0406,
	0xB7: 0x0407, 0xBD: 0x0490, 0xBE: 0x040E,
}

var koi8eA0toBF = [32]uint32{
	0x00A0, 0x0452, 0x0453, 0x0451, 0x0454, 0x0455, 0x0456, 0x0457,
	0x0458, 0x0459, 0x045A, 0x045B, 0x045C, 0x00AD, 0x045E, 0x045F,
	0x2116, 0x0402, 0x0403, 0x0401, 0x0404, 0x0405, 0x0406, 0x0407,
	0x0408, 0x0409, 0x040A, 0x040B, 0x040C, 0x00A4, 0x040E, 0x040F,
}

var koi8uni80toBF = [64]uint32{
	0x2500, 0x2502, 0x250C, 0x2510, 0x2514, 0x2518, 0x251C, 0x2524,
	0x252C, 0x2534, 0x253C, 0x2580, 0x2584, 0x2588, 0x258C, 0x2590,
	0x2591, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x00A9, 0x2122, 0x00A0, 0x00BB, 0x00AE, 0x00AB, 0x00B7, 0x00A4,
	0x00A0, 0x0452, 0x0453, 0x0451, 0x0454, 0x0455, 0x0456, 0x0457,
	0x0458, 0x0459, 0x045A, 0x045B, 0x045C, 0x0491, 0x045E, 0x045F,
	0x2116, 0x0402, 0x0403, 0x0401, 0x0404, 0x0405, 0x0406, 0x0407,
	0x0408, 0x0409, 0x040A, 0x040B, 0x040C, 0x0490, 0x040E, 0x040F,
}

func koi8eRecode(code uint32) uint32 {
	if code < 0xA0 { return code }
	if code < 0xC0 { return koi8eA0toBF[code - 0xA0] }
	return koi8rRecode(code)
}

func koi8uniRecode(code uint32) uint32 {
	if code < 0x80 { return code }
	if code < 0xC0 { return koi8uni80toBF[code - 0x80] }
	return koi8rRecode(code)
}

func standardName(code uint32) string {
	if code >= uint32(len(psenc.StandardEncoding)) { return "" }
	name := psenc.StandardEncoding[code]
	if name == ".notdef" { return "" }
	return name
}

func linear(name string, mappings ...*Mapping) *Encoding {
	enc := &Encoding{ Name: name, Size: 256 }
	for _, mapping := range mappings { enc.addMapping(mapping) }
	return enc
}

func unicodeVia(recode func(uint32) uint32) *Mapping {
	return &Mapping{ Type: Unicode, recode: recode }
}

// Builds a fresh set of the built in encodings.
func builtinEncodings() []*Encoding {
	iso8859 := func(name string, table *charmap.Charmap) *Encoding {
		return linear(name, unicodeVia(charmapRecode(table)))
	}

	unicode := &Encoding{ Name: "iso10646-1", Size: 256*256 }
	unicode.addMapping(&Mapping{ Type: Unicode })

	latin1 := linear("iso8859-1",
		&Mapping{ Type: TrueType, PID: 2, EID: 2 },
		&Mapping{ Type: Unicode },
		&Mapping{ Type: TrueType, PID: 1, EID: 0, recode: appleRecode(charmap.ISO8859_1, charmap.Macintosh) },
	)
	cyrillic := linear("iso8859-5",
		unicodeVia(charmapRecode(charmap.ISO8859_5)),
		&Mapping{ Type: TrueType, PID: 1, EID: 7, recode: appleRecode(charmap.ISO8859_5, charmap.MacintoshCyrillic) },
	)
	latin9 := iso8859("iso8859-15", charmap.ISO8859_15)
	latin9.Aliases = []string{ "fcd8859-15" }

	standard := linear("adobe-standard", &Mapping{ Type: PostScript, name: standardName })

	encodings := []*Encoding{
		unicode,
		latin1,
		iso8859("iso8859-2", charmap.ISO8859_2),
		iso8859("iso8859-3", charmap.ISO8859_3),
		iso8859("iso8859-4", charmap.ISO8859_4),
		cyrillic,
		iso8859("iso8859-6", charmap.ISO8859_6),
		iso8859("iso8859-7", charmap.ISO8859_7),
		iso8859("iso8859-8", charmap.ISO8859_8),
		iso8859("iso8859-9", charmap.ISO8859_9),
		iso8859("iso8859-10", charmap.ISO8859_10),
		iso8859("iso8859-13", charmap.ISO8859_13),
		iso8859("iso8859-14", charmap.ISO8859_14),
		latin9,
		iso8859("iso8859-16", charmap.ISO8859_16),
		iso8859("koi8-r", charmap.KOI8R),
		linear("koi8-ru", unicodeVia(patchedRecode(charmap.KOI8R, koi8ruPatch))),
		linear("koi8-uni", unicodeVia(koi8uniRecode)),
		linear("koi8-e", unicodeVia(koi8eRecode)),
		iso8859("koi8-u", charmap.KOI8U),
		linear("microsoft-symbol",
			&Mapping{ Type: TrueType, PID: 3, EID: 0 },
			&Mapping{ Type: TrueType, PID: 3, EID: 1 },
		),
		linear("apple-roman", &Mapping{ Type: TrueType, PID: 1, EID: 0 }),
		iso8859("microsoft-cp1251", charmap.Windows1251),
		iso8859("microsoft-cp1252", charmap.Windows1252),
		standard,
	}

	// 94x94 sets addressed by their GL codes
	matrix := func(name string, enc encoding.Encoding, toBytes func(uint32) []byte) *Encoding {
		set := &Encoding{ Name: name, Size: 0x7F, RowSize: 0x7F, First: 0x21, FirstCol: 0x21 }
		set.addMapping(unicodeVia(multibyteRecode(enc, toBytes)))
		return set
	}
	big5 := &Encoding{ Name: "big5.eten-0", Aliases: []string{ "big5-0" }, Size: 0xFA, RowSize: 0xFF, First: 0xA1, FirstCol: 0x40 }
	big5.addMapping(unicodeVia(multibyteRecode(traditionalchinese.Big5, rawBytes)))

	return append(encodings,
		matrix("jisx0208.1983-0", japanese.EUCJP, eucBytes),
		matrix("gb2312.1980-0", simplifiedchinese.GBK, eucBytes),
		matrix("ksc5601.1987-0", korean.EUCKR, eucBytes),
		big5,
	)
}
