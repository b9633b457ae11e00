package ttcap

import "fmt"
import "strings"

// Splits a font path into the real file path and the capability
// block, which is the text after the last slash when it contains a
// colon. For "dir/ai=0.2:ds=y:font.ttf" this returns "dir/font.ttf"
// and "ai=0.2:ds=y:font.ttf".
func SplitPath(fileName string) (realPath, capHead string) {
	base := strings.LastIndexByte(fileName, '/') + 1
	colon := strings.LastIndexByte(fileName[base:], ':')
	if colon < 0 { return fileName, "" }
	colon += base
	return fileName[:base] + fileName[colon + 1:], fileName[base:]
}

// Parses a capability block into records. Everything before the last
// colon is a list of colon separated "key=value" (or bare "key")
// entries. A number right before the last colon, as in ":2:font.ttc",
// sets the face number.
func ParseCapability(capHead string) (Records, error) {
	var records Records
	term := strings.LastIndexByte(capHead, ':')
	if term < 0 { return records, nil }

	// legacy ":num:filename" form
	for p := term - 1; p >= 0; p-- {
		if capHead[p] == ':' {
			_ = records.Add("FaceNumber", capHead[p + 1 : term])
			term = p
			break
		}
		if capHead[p] < '0' || capHead[p] > '9' { break }
	}

	for _, entry := range strings.Split(capHead[:term], ":") {
		if entry == "" { continue }
		key, value, _ := strings.Cut(entry, "=")
		if _, found := aliases[strings.ToLower(key)]; !found {
			if _, _, valid := lookupRecord(key); !valid {
				return records, fmt.Errorf("%w: unknown capability %q", ErrBadFontPath, key)
			}
		}
		err := records.AddCapability(key, value)
		if err != nil { return records, err }
	}
	return records, nil
}
