package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes frames to timestamped PNG files. Captures taken
// within the same second get a numeric suffix.
type ScreenshotCapture struct {
	dir    string
	prefix string
	now    func() time.Time

	last  string
	count int
}

// NewScreenshotCapture writes into dir, or the working directory when dir
// is empty.
func NewScreenshotCapture(dir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{dir: dir, prefix: prefix, now: time.Now}
}

func (sc *ScreenshotCapture) nextPath() string {
	stamp := sc.now().Format("2006-01-02_15-04-05")
	if stamp == sc.last {
		sc.count++
	} else {
		sc.last, sc.count = stamp, 0
	}

	name := sc.prefix + "_" + stamp
	if sc.count > 0 {
		name += fmt.Sprintf("_%d", sc.count)
	}
	return filepath.Join(sc.dir, name+".png")
}

// FlipRows converts bottom-up RGBA rows, as glReadPixels returns them, into
// a top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	stride := width * 4
	if width <= 0 || height <= 0 || len(pixels) != stride*height {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %dx%dx4", len(pixels), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*stride:]
		copy(img.Pix[y*img.Stride:], src[:stride])
	}
	return img, nil
}

// CaptureFromPixels saves a framebuffer read back from OpenGL and returns
// the file path.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}

	if sc.dir != "" {
		if err := os.MkdirAll(sc.dir, 0o755); err != nil {
			return "", fmt.Errorf("screenshot dir: %w", err)
		}
	}

	path := sc.nextPath()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding png: %w", err)
	}
	return path, f.Close()
}
