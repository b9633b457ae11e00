package xtt

import "log/slog"

import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/fontenc"
import "github.com/tinne26/xtt/xlfd"

// The resolution assumed for requests that don't specify one.
const DefaultResolution = 75

// A Backend owns the caches shared by the fonts it opens: open
// faces, their instances, the known encodings and the atoms used for
// font properties.
//
// A Backend is not safe for concurrent use, but independent backends
// can be used from different goroutines.
type Backend struct {
	faces *FaceCache
	encodings *fontenc.Registry
	atoms *AtomTable
	logger *slog.Logger
}

// Configuration options for [NewBackend].
type Option func(*backendConfig)

type backendConfig struct {
	opener font.Opener
	logger *slog.Logger
	encodingDirs []string
}

// Sets the function used to open font files. Defaults to [font.Open].
func WithOpener(opener font.Opener) Option {
	return func(config *backendConfig) { config.opener = opener }
}

// Sets the logger for the backend. Defaults to [Logger].
func WithLogger(logger *slog.Logger) Option {
	return func(config *backendConfig) { config.logger = logger }
}

// Adds encodings.dir index files to search for encodings that
// aren't built in.
func WithEncodingsDir(dirFiles ...string) Option {
	return func(config *backendConfig) {
		config.encodingDirs = append(config.encodingDirs, dirFiles...)
	}
}

// Creates a new backend with empty caches.
func NewBackend(opts ...Option) *Backend {
	var config backendConfig
	for _, opt := range opts { opt(&config) }
	if config.logger == nil { config.logger = Logger() }
	return &Backend{
		faces: NewFaceCache(config.opener, config.logger),
		encodings: fontenc.NewRegistry(config.encodingDirs...),
		atoms: NewAtomTable(),
		logger: config.logger,
	}
}

// The face cache of the backend.
func (self *Backend) Faces() *FaceCache { return self.faces }

// The encoding registry of the backend.
func (self *Backend) Encodings() *fontenc.Registry { return self.encodings }

// The atom table used for font properties.
func (self *Backend) Atoms() *AtomTable { return self.atoms }

// Closes every open face. Fonts still open become unusable.
func (self *Backend) Close() error {
	return self.faces.closeAll()
}

// An open font request.
type Request struct {
	FileName string // font path, possibly with embedded capabilities
	Name string // requested XLFD name
	Values xlfd.Values // completed scalable values
	Format BitmapFormat // zero means DefaultBitmapFormat
}

// Builds a request from a font path and an XLFD name, completing
// the scalable values with the given resolution (non positive values
// use [DefaultResolution]).
func NewRequest(fileName, name string, xres, yres int) (Request, error) {
	if xres <= 0 { xres = DefaultResolution }
	if yres <= 0 { yres = DefaultResolution }
	parsed, err := xlfd.Parse(name)
	if err != nil { return Request{}, newError(BadFontName, "parse name", err) }
	vals, err := parsed.Values()
	if err != nil { return Request{}, newError(BadFontName, "parse name", err) }
	err = vals.Complete(xres, yres)
	if err != nil { return Request{}, newError(BadFontName, "parse name", err) }
	return Request{ FileName: fileName, Name: name, Values: vals, Format: DefaultBitmapFormat }, nil
}

// Opens a font for the request. The font must be closed when no
// longer needed.
func (self *Backend) OpenFont(req Request) (*Font, error) {
	return self.loadFont(&req)
}

// Returns the information of the font for the request without
// keeping it open.
func (self *Backend) FontInfo(req Request) (*FontInfo, error) {
	fnt, err := self.loadFont(&req)
	if err != nil { return nil, err }
	info := fnt.Info()
	fnt.Close()
	return info, nil
}
