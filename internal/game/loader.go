package game

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // texture decoder
	"os"
	"path/filepath"

	"github.com/Garsondee/skyline/internal/entity"
	_ "golang.org/x/image/webp" // texture decoder
)

// ErrTextureNotFound is returned when no file exists for a texture key.
var ErrTextureNotFound = errors.New("texture not found")

// textureExts are tried in order for each key.
var textureExts = []string{".png", ".webp"}

// FileLoader reads textures from Dir/<key>.png or Dir/<key>.webp on a
// background goroutine.
type FileLoader struct {
	Dir string
}

// Load starts decoding key and returns a channel that settles once.
func (l FileLoader) Load(key string) <-chan entity.TextureResult {
	ch := make(chan entity.TextureResult, 1)
	go func() {
		img, err := l.decode(key)
		ch <- entity.TextureResult{Image: img, Err: err}
	}()
	return ch
}

func (l FileLoader) decode(key string) (image.Image, error) {
	for _, ext := range textureExts {
		path := filepath.Join(l.Dir, key+ext)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open texture %q: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode texture %q: %w", path, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrTextureNotFound, key, l.Dir)
}

// LoggingLoader records every settled request in an EventLog before
// forwarding it. Texture failures are the host's to log.
//
// Each request holds one goroutine until upstream settles. Closing Done
// releases requests that never will; their channels close unsettled.
type LoggingLoader struct {
	Next entity.TextureLoader
	Log  *EventLog
	Done <-chan struct{}
}

// Load forwards to Next and logs the outcome.
func (l LoggingLoader) Load(key string) <-chan entity.TextureResult {
	in := l.Next.Load(key)
	out := make(chan entity.TextureResult, 1)
	go func() {
		var res entity.TextureResult
		var ok bool
		select {
		case res, ok = <-in:
		case <-l.Done:
			l.Log.Add(key, "texture", "abandoned", "loader shut down before a result", 0)
			close(out)
			return
		}
		if !ok {
			l.Log.Add(key, "texture", "failed", "loader closed without a result", 0)
			close(out)
			return
		}
		if res.Err != nil || res.Image == nil {
			msg := "empty image"
			if res.Err != nil {
				msg = res.Err.Error()
			}
			l.Log.Add(key, "texture", "failed", msg, 0)
		} else {
			b := res.Image.Bounds()
			l.Log.Add(key, "texture", "loaded", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), float64(b.Dx()*b.Dy()))
		}
		out <- res
	}()
	return out
}
