package fontenc

import "bufio"
import "compress/gzip"
import "io"
import "os"
import "path/filepath"
import "strconv"
import "strings"

// The name of the index file that lists the encoding files of a
// directory. Its first line holds the number of entries, and each
// following line an encoding name and a file path (relative paths
// are relative to the index file's directory).
const DirFileName = "encodings.dir"

// A set of known encodings. Starts with the built in encodings and
// loads the unknown ones from encoding files on demand.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	encodings []*Encoding
	dirFiles []string
}

// Creates a registry with the built in encodings. The given index
// files are searched, in order, for encodings that aren't known.
func NewRegistry(dirFiles ...string) *Registry {
	return &Registry{
		encodings: builtinEncodings(),
		dirFiles: dirFiles,
	}
}

// Adds an encoding. Encodings added later take precedence.
func (self *Registry) Register(enc *Encoding) {
	self.encodings = append(self.encodings, enc)
}

// Returns the encoding with the given name or alias, or nil.
func (self *Registry) Find(name string) *Encoding {
	return self.FindFor(name, "")
}

// Like [Registry.Find], but also searches the index file that sits
// next to the given font file before the registry's own index files.
func (self *Registry) FindFor(name, fontFile string) *Encoding {
	for i := len(self.encodings) - 1; i >= 0; i-- {
		if self.encodings[i].HasName(name) { return self.encodings[i] }
	}

	dirFiles := self.dirFiles
	if fontFile != "" {
		local := filepath.Join(filepath.Dir(fontFile), DirFileName)
		dirFiles = append([]string{ local }, dirFiles...)
	}
	for _, dirFile := range dirFiles {
		enc := loadFromIndex(name, dirFile)
		if enc == nil { continue }
		if !enc.HasName(name) { enc.Aliases = append(enc.Aliases, name) }
		self.Register(enc)
		return enc
	}
	return nil
}

// Finds the encoding with the given name and returns its first
// mapping of the given type (see [Encoding.FindMapping]).
func (self *Registry) FindMapping(name string, kind MappingType, pid, eid int) *Mapping {
	return self.Find(name).FindMapping(kind, pid, eid)
}

// Returns the names of the encodings currently in the registry.
func (self *Registry) Names() []string {
	names := make([]string, 0, len(self.encodings))
	for _, enc := range self.encodings {
		names = append(names, enc.Name)
	}
	return names
}

func loadFromIndex(name, dirFile string) *Encoding {
	file, err := os.Open(dirFile)
	if err != nil { return nil }
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() { return nil }
	if _, err := strconv.Atoi(strings.TrimSpace(scanner.Text())); err != nil { return nil }
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) < 2 { break }
		if !strings.EqualFold(fields[0], name) { continue }
		path := strings.TrimSpace(line[len(fields[0]):])
		if !filepath.IsAbs(path) { path = filepath.Join(filepath.Dir(dirFile), path) }
		enc, err := OpenFile(path)
		if err != nil { return nil }
		return enc
	}
	return nil
}

// Parses the encoding file at the given path. Files ending in ".gz"
// are decompressed.
func OpenFile(path string) (*Encoding, error) {
	file, err := os.Open(path)
	if err != nil { return nil, err }
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil { return nil, err }
		defer gz.Close()
		reader = gz
	}
	return ParseFile(reader)
}
