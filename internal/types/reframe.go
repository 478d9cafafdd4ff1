package types

// FaceBox is one detected face in one sampled frame, in pixel units.
type FaceBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CropWindow is the rectangle of the original frame retained after
// aspect-ratio conversion. Always fully inside the frame.
type CropWindow struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AspectRatio is a target width:height ratio.
type AspectRatio struct {
	W int
	H int
}

// AspectRatios maps the supported ratio labels to their components.
var AspectRatios = map[string]AspectRatio{
	"9:16": {9, 16}, // Vertical (TikTok, Instagram Stories, YouTube Shorts)
	"1:1":  {1, 1},  // Square (Instagram)
	"16:9": {16, 9}, // Horizontal (YouTube, standard video)
}

// Frame is a single decoded-and-reencoded video frame handed to the face
// detector adapter.
type Frame struct {
	TimestampSec float64
	Width        int
	Height       int
	Data         []byte // encoded image payload (JPEG)
}
