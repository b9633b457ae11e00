package xtt

import "path/filepath"
import "slices"
import "sort"
import "strings"

import "github.com/tinne26/xtt/ttcap"

// A Renderer opens fonts for files with a given extension.
type Renderer struct {
	Extension string // including the leading dot
	OpenFont func(req Request) (*Font, error)
	FontInfo func(req Request) (*FontInfo, error)
}

type rendererEntry struct {
	renderer Renderer
	priority int
}

// Renderers indexed by file extension. When more than one renderer
// handles an extension, the one with the highest priority is used.
type Registry struct {
	entries map[string][]rendererEntry
}

// Creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ entries: make(map[string][]rendererEntry) }
}

// Adds a renderer. Extensions are compared case-insensitively.
// Renderers registered later win ties.
func (self *Registry) Register(renderer Renderer, priority int) {
	ext := strings.ToLower(renderer.Extension)
	entries := self.entries[ext]
	at := sort.Search(len(entries), func(i int) bool {
		return entries[i].priority <= priority
	})
	entries = slices.Insert(entries, at, rendererEntry{ renderer, priority })
	self.entries[ext] = entries
}

// Returns the renderer for the file name, based on its extension.
// Capabilities embedded in the name are ignored.
func (self *Registry) Lookup(fileName string) (Renderer, bool) {
	realPath, _ := ttcap.SplitPath(fileName)
	entries := self.entries[strings.ToLower(filepath.Ext(realPath))]
	if len(entries) == 0 { return Renderer{}, false }
	return entries[0].renderer, true
}

// Extensions handled by the backend, with their priorities.
var rendererExtensions = []struct {
	ext string
	priority int
}{
	{ ".ttf", 0 }, { ".ttc", 0 }, { ".otf", 0 }, { ".otc", 0 },
	{ ".pfa", 0 }, { ".pfb", 0 },
	{ ".bdf", -10 }, { ".pcf", -10 },
}

// Registers the backend as the renderer for the font formats it
// handles.
func (self *Backend) RegisterRenderers(registry *Registry) {
	for _, entry := range rendererExtensions {
		registry.Register(Renderer{
			Extension: entry.ext,
			OpenFont: self.OpenFont,
			FontInfo: self.FontInfo,
		}, entry.priority)
	}
}
