package genimage

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

// ErrCheckpointMismatch is returned when a checkpoint doesn't belong to the
// target image it is loaded for.
var ErrCheckpointMismatch = errors.New("checkpoint does not match target image")

// checkpointData is what gets persisted of a run. The buffer isn't stored,
// it is rebuilt from the triangles when loading.
type checkpointData struct {
	Generation int
	Width      int
	Height     int
	Score      int64
	Triangles  []Triangle
}

// WriteCheckpoint writes the specimen and its generation to w, gzip compressed.
func WriteCheckpoint(w io.Writer, s *Specimen, generation int) error {
	gzWriter := gzip.NewWriter(w)

	data := checkpointData{
		Generation: generation,
		Width:      s.Buffer.Bounds().Dx(),
		Height:     s.Buffer.Bounds().Dy(),
		Score:      s.Score,
		Triangles:  s.Triangles,
	}
	if err := gob.NewEncoder(gzWriter).Encode(data); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return gzWriter.Close()
}

// ReadCheckpoint reads a checkpoint from r and rebuilds the specimen on the
// target. It returns ErrCheckpointMismatch if the rebuilt specimen differs
// from the saved one.
func ReadCheckpoint(r io.Reader, target *image.NRGBA) (*Specimen, int, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var data checkpointData
	if err := gob.NewDecoder(gzReader).Decode(&data); err != nil {
		return nil, 0, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	if data.Width != target.Bounds().Dx() || data.Height != target.Bounds().Dy() {
		return nil, 0, fmt.Errorf("%w: size %dx%d, target %dx%d", ErrCheckpointMismatch,
			data.Width, data.Height, target.Bounds().Dx(), target.Bounds().Dy())
	}
	s := Replay(target, data.Triangles)
	if s.Score != data.Score {
		return nil, 0, fmt.Errorf("%w: score %d, replayed %d", ErrCheckpointMismatch, data.Score, s.Score)
	}
	return s, data.Generation, nil
}

// SaveCheckpoint saves the specimen to a file.
func SaveCheckpoint(filePath string, s *Specimen, generation int) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	if err := WriteCheckpoint(file, s, generation); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadCheckpoint loads a specimen saved with SaveCheckpoint.
func LoadCheckpoint(filePath string, target *image.NRGBA) (*Specimen, int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	return ReadCheckpoint(file, target)
}

// Checkpoint is a Drawer saving the best specimen periodically.
type Checkpoint struct {
	Path  string
	Every int
}

// Draw saves the checkpoint when the generation is due.
func (c *Checkpoint) Draw(f Frame) error {
	if f.Best == nil || f.Generation == 0 {
		return nil
	}
	if c.Every > 1 && f.Generation%c.Every != 0 {
		return nil
	}
	if err := SaveCheckpoint(c.Path, f.Best, f.Generation); err != nil {
		return err
	}
	Logger().Info("checkpoint saved", "path", c.Path, "generation", f.Generation)
	return nil
}
