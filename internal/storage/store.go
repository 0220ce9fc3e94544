package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/bouncebox/internal/physics"
	"github.com/san-kum/bouncebox/internal/runner"
	"github.com/san-kum/bouncebox/internal/vecmath"
)

const (
	metadataFile  = "metadata.json"
	framesFile    = "frames.csv"
	particlesFile = "particles.csv"
)

var (
	frameHeader    = []string{"index", "time", "fps", "kinetic_energy", "potential_energy", "collisions", "wall_bounces"}
	particleHeader = []string{"x", "y", "z", "vx", "vy", "vz", "radius", "mass", "r", "g", "b"}
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Particles     int                `json:"particles"`
	FrameRate     float64            `json:"frame_rate"`
	Duration      float64            `json:"duration"`
	ResetInterval float64            `json:"reset_interval"`
	FramesRun     int                `json:"frames_run"`
	Repeats       int                `json:"repeats"`
	Collisions    int                `json:"collisions"`
	Params        map[string]float64 `json:"params"`
	Metrics       map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg runner.Config, result *runner.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	if err := s.save(runID, now, cfg, result); err != nil {
		return "", err
	}
	return runID, nil
}

// save writes the run directory, removing it again if any file fails.
func (s *Store) save(runID string, now time.Time, cfg runner.Config, result *runner.Result) error {
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     now,
		Seed:          cfg.Seed,
		Particles:     cfg.Particles,
		FrameRate:     cfg.FrameRate,
		Duration:      cfg.Duration,
		ResetInterval: cfg.ResetInterval,
		FramesRun:     result.FramesRun,
		Repeats:       result.Repeats,
		Collisions:    result.Collisions,
		Params:        cfg.Params.GetParams(),
		Metrics:       result.Metrics,
	}

	rows := make([][]string, 0, len(result.Frames))
	for _, f := range result.Frames {
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			formatFloat(f.Time),
			formatFloat(f.FPS),
			formatFloat(f.KineticEnergy),
			formatFloat(f.PotentialEnergy),
			strconv.Itoa(f.Collisions),
			strconv.Itoa(f.WallBounces),
		})
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), frameHeader, rows); err != nil {
		os.RemoveAll(runDir)
		return err
	}

	rows = make([][]string, 0, len(result.Final))
	for _, p := range result.Final {
		row := make([]string, 0, len(particleHeader))
		for _, v := range []vecmath.Vec3{p.Position, p.Velocity} {
			for _, c := range v.Array() {
				row = append(row, formatFloat32(c))
			}
		}
		row = append(row, formatFloat32(p.Radius), formatFloat32(p.Mass))
		for _, c := range p.Color.Array() {
			row = append(row, formatFloat32(c))
		}
		rows = append(rows, row)
	}
	if err := writeCSV(filepath.Join(runDir, particlesFile), particleHeader, rows); err != nil {
		os.RemoveAll(runDir)
		return err
	}

	// metadata.json marks the run as complete for List, so it goes last.
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return err
	}

	return nil
}

// List returns every readable run, oldest first. Unreadable run directories
// are logged and skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			log.Printf("[STORE] skipping %s: %v", entry.Name(), err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]runner.Frame, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	frames := make([]runner.Frame, 0, len(records))
	for _, record := range records {
		if len(record) != len(frameHeader) {
			continue
		}
		vals, ok := parseFloats(record, 64)
		if !ok {
			continue
		}
		frames = append(frames, runner.Frame{
			Index:           int(vals[0]),
			Time:            vals[1],
			FPS:             vals[2],
			KineticEnergy:   vals[3],
			PotentialEnergy: vals[4],
			Collisions:      int(vals[5]),
			WallBounces:     int(vals[6]),
		})
	}

	return frames, nil
}

func (s *Store) LoadParticles(runID string) ([]physics.Particle, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, particlesFile))
	if err != nil {
		return nil, err
	}

	particles := make([]physics.Particle, 0, len(records))
	for _, record := range records {
		if len(record) != len(particleHeader) {
			continue
		}
		vals, ok := parseFloats(record, 32)
		if !ok {
			continue
		}
		f := func(i int) float32 { return float32(vals[i]) }
		particles = append(particles, physics.Particle{
			Position: vecmath.V(f(0), f(1), f(2)),
			Velocity: vecmath.V(f(3), f(4), f(5)),
			Radius:   f(6),
			Mass:     f(7),
			Color:    vecmath.V(f(8), f(9), f(10)),
		})
	}

	return particles, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatFloat32 writes the shortest text that parses back to the same float32.
func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseFloats(record []string, bitSize int) ([]float64, bool) {
	vals := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, bitSize)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// readCSV returns the data rows without the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
