package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrNoOutputDir = errors.New("storage: output directory does not exist")

const (
	manifestName = "manifest.json"
	framePrefix  = "phase."
	frameExt     = ".png"
)

// FrameName is the file name of a frame: phase.NNN.png.
func FrameName(frame int) string {
	return fmt.Sprintf("%s%03d%s", framePrefix, frame, frameExt)
}

// FrameStore writes frames as numbered PNG files into an existing directory.
type FrameStore struct {
	baseDir string
	encoder png.Encoder
}

func New(baseDir string) *FrameStore {
	return &FrameStore{
		baseDir: baseDir,
		encoder: png.Encoder{CompressionLevel: png.DefaultCompression},
	}
}

// Init checks that the output directory exists. It never creates it.
func (s *FrameStore) Init() error {
	info, err := os.Stat(s.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoOutputDir, s.baseDir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoOutputDir, s.baseDir)
	}
	return nil
}

func (s *FrameStore) Dir() string { return s.baseDir }

func (s *FrameStore) Path(frame int) string {
	return filepath.Join(s.baseDir, FrameName(frame))
}

// Save encodes img as PNG. It is safe for concurrent use with distinct frames.
func (s *FrameStore) Save(frame int, img image.Image) (err error) {
	f, err := os.Create(s.Path(frame))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return s.encoder.Encode(f, img)
}

func (s *FrameStore) Load(frame int) (image.Image, error) {
	return loadPNG(s.Path(frame))
}

// Frames lists the frame indices present in the directory, ascending.
func (s *FrameStore) Frames() ([]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	frames := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, framePrefix) || !strings.HasSuffix(name, frameExt) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, framePrefix), frameExt))
		if err != nil || n < 0 {
			continue
		}
		frames = append(frames, n)
	}
	sort.Ints(frames)
	return frames, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// FrameRecord is the manifest entry for one frame.
type FrameRecord struct {
	Frame   int     `json:"frame"`
	File    string  `json:"file"`
	Damping float64 `json:"damping"`
	Drawn   int     `json:"segments_drawn"`
	Skipped int     `json:"segments_skipped"`
	Millis  int64   `json:"elapsed_ms"`
	Error   string  `json:"error,omitempty"`
}

// Manifest records how a directory of frames was produced.
type Manifest struct {
	Created time.Time     `json:"created"`
	Config  any           `json:"config"`
	Frames  []FrameRecord `json:"frames"`
}

func (s *FrameStore) WriteManifest(m *Manifest) (err error) {
	f, err := os.Create(filepath.Join(s.baseDir, manifestName))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func (s *FrameStore) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, manifestName))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
