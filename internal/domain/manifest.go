package domain

// ManifestVersion is the fixed format version marker written to every
// exported manifest.
const ManifestVersion = "2.0"

// ManifestFileName is the filename of the manifest inside the archive.
const ManifestFileName = "movie.spec"

// Manifest is the structured metadata bundled inside the exported archive.
// It describes the canvas, the playback rate, and one sprite whose frames
// each reference a stored image.
type Manifest struct {
	Version string            `json:"version"`
	Params  ManifestParams    `json:"params"`
	Images  map[string]string `json:"images"`
	Sprites []Sprite          `json:"sprites"`
}

// ManifestParams carries the playback parameters for the whole animation.
type ManifestParams struct {
	ViewBox ViewBox `json:"viewBox"`
	FPS     int     `json:"fps"`
	Frames  int     `json:"frames"`
	Loop    bool    `json:"loop"`
}

// ViewBox is the canvas rectangle every frame is laid out into.
type ViewBox struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Sprite is one visual element composed of a sequence of frame placements.
// The exporter emits exactly one sprite covering the full canvas.
type Sprite struct {
	// ImageKey is null for the single full-frame sprite.
	ImageKey *string       `json:"imageKey"`
	Frames   []SpriteFrame `json:"frames"`
}

// SpriteFrame places one image on the canvas for one tick.
type SpriteFrame struct {
	Alpha     float64 `json:"alpha"`
	Transform Matrix  `json:"transform"`
	ImageKey  string  `json:"imageKey"`
	Layout    Layout  `json:"layout"`
}

// Matrix is a 2D affine transform in the conventional a..d/tx/ty form.
type Matrix struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	D  float64 `json:"d"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// IdentityMatrix returns the unit affine transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// Layout is the placement rectangle of a sprite frame.
type Layout struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}
