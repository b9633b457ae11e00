package xtt

import "log/slog"

import "github.com/tinne26/xtt/font"

// A font engine face shared by all the instances built on it.
type Face struct {
	cache *FaceCache
	path string
	realPath string
	engine font.Face
	bitmap bool
	numHMetrics int

	instances map[instanceKey]*Instance
	unshared []*Instance // instances that can't be shared
	active *Instance
}

// The lookup path the face was opened with.
func (self *Face) Path() string { return self.path }

// The path of the font file.
func (self *Face) RealPath() string { return self.realPath }

// The underlying engine face.
func (self *Face) Engine() font.Face { return self.engine }

// Whether the face is handled as a bitmap font. Scalable faces
// without any contours also count as bitmap fonts.
func (self *Face) IsBitmap() bool { return self.bitmap }

// The numberOfHMetrics field of the face's hhea table, or 0.
func (self *Face) NumHMetrics() int { return self.numHMetrics }

// Number of live instances using the face.
func (self *Face) NumInstances() int {
	return len(self.instances) + len(self.unshared)
}

// The instance currently bound to the engine, if any.
func (self *Face) Active() *Instance { return self.active }

// Open engine faces, indexed by lookup path. A face stays open
// while any instance uses it.
//
// A FaceCache is not safe for concurrent use.
type FaceCache struct {
	opener font.Opener
	faces map[string]*Face
	logger *slog.Logger
}

// Creates an empty face cache. A nil opener defaults to [font.Open].
func NewFaceCache(opener font.Opener, logger *slog.Logger) *FaceCache {
	if opener == nil { opener = font.Open }
	if logger == nil { logger = Logger() }
	return &FaceCache{
		opener: opener,
		faces: make(map[string]*Face),
		logger: logger,
	}
}

// Number of open faces.
func (self *FaceCache) Len() int { return len(self.faces) }

// Returns the open face for the given lookup path.
func (self *FaceCache) Lookup(enginePath string) (*Face, bool) {
	face, found := self.faces[enginePath]
	return face, found
}

// Returns the face for the given lookup path, opening it from the
// real path if it isn't open yet. A newly opened face has no
// instances; callers that fail to attach one must [FaceCache.Release]
// it.
func (self *FaceCache) Open(enginePath, realPath string, faceIndex int) (*Face, error) {
	if face, found := self.faces[enginePath]; found {
		self.logger.Debug("face cache hit", "path", enginePath)
		return face, nil
	}

	engine, err := self.opener(realPath, faceIndex)
	if err != nil { return nil, engineError("open face", err) }
	info := engine.Info()
	face := &Face{
		cache: self,
		path: enginePath,
		realPath: realPath,
		engine: engine,
		instances: make(map[instanceKey]*Instance),
	}
	face.bitmap = !info.Scalable
	if info.Scalable && info.Format == "TrueType" && info.MaxContours == 0 {
		face.bitmap = true
	}
	if info.SFNT {
		face.numHMetrics, err = font.NumHMetrics(engine)
		if err != nil { face.numHMetrics = 0 }
	}
	self.faces[enginePath] = face
	self.logger.Debug("face opened", "path", enginePath, "bitmap", face.bitmap, "glyphs", info.NumGlyphs)
	return face, nil
}

// Closes the face if no instance uses it anymore. Returns whether
// the face was closed.
func (self *FaceCache) Release(face *Face) bool {
	if face.NumInstances() > 0 { return false }
	if self.faces[face.path] != face { return false }
	delete(self.faces, face.path)
	err := face.engine.Close()
	if err != nil {
		self.logger.Warn("closing face", "path", face.path, "err", err)
	}
	return true
}

// Closes every face, whether instances still use it or not.
func (self *FaceCache) closeAll() error {
	var firstErr error
	for path, face := range self.faces {
		for _, instance := range face.instances {
			instance.glyphs.Release()
		}
		for _, instance := range face.unshared {
			instance.glyphs.Release()
		}
		face.instances = make(map[instanceKey]*Instance)
		face.unshared = nil
		face.active = nil
		err := face.engine.Close()
		if err != nil && firstErr == nil { firstErr = err }
		delete(self.faces, path)
	}
	return firstErr
}
