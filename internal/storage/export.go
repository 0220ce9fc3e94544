package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/bouncebox/internal/runner"
)

type ExportParticle struct {
	Position [3]float32 `json:"position"`
	Velocity [3]float32 `json:"velocity"`
	Radius   float32    `json:"radius"`
	Mass     float32    `json:"mass"`
	Color    [3]float32 `json:"color"`
}

type ExportData struct {
	Run       RunMetadata      `json:"run"`
	Frames    []runner.Frame   `json:"frames"`
	Particles []ExportParticle `json:"particles"`
}

// Export gathers a stored run into one document.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	particles, err := s.LoadParticles(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Run:       *meta,
		Frames:    frames,
		Particles: make([]ExportParticle, len(particles)),
	}
	for i, p := range particles {
		data.Particles[i] = ExportParticle{
			Position: p.Position.Array(),
			Velocity: p.Velocity.Array(),
			Radius:   p.Radius,
			Mass:     p.Mass,
			Color:    p.Color.Array(),
		}
	}
	return data, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
