//go:build ignore

// This script generates golden frames for the codec tests.
// Run with: go run testdata/generate.go
//
// Generated test data structure:
//   testdata/generated/
//   ├── STRv2/
//   │   ├── 32x32_q4/
//   │   │   ├── noise.bin    # compressed frame
//   │   │   ├── noise.mdec   # source MDEC codes, little-endian 16-bit words
//   │   │   └── noise.json   # frame configuration
//   │   └── ...
//   ├── STRv3/
//   ├── Iki/
//   └── Lain/

package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	psxstr "github.com/llehouerou/go-psxstr"
	"github.com/llehouerou/go-psxstr/mdec"
)

// FrameConfig describes a generated frame.
type FrameConfig struct {
	Format       string `json:"format"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Qscale       int    `json:"qscale"`        // luma, or every block for STR
	ChromaQscale int    `json:"chroma_qscale"` // Lain only
}

// Metadata is written next to each frame.
type Metadata struct {
	FrameConfig
	Pattern string `json:"pattern"`
	Codes   int    `json:"codes"`
	Size    int    `json:"size"`
}

var formats = map[string]psxstr.Format{
	"STRv1": psxstr.STRv1,
	"STRv2": psxstr.STRv2,
	"STRv3": psxstr.STRv3,
	"Iki":   psxstr.Iki,
	"Lain":  psxstr.Lain,
}

var configs = []FrameConfig{
	{"STRv1", 32, 32, 4, 4},
	{"STRv2", 32, 32, 4, 4},
	{"STRv2", 320, 240, 12, 12},
	{"STRv3", 32, 32, 4, 4},
	{"STRv3", 320, 240, 12, 12},
	{"Iki", 48, 32, 6, 6},
	{"Iki", 320, 224, 10, 10},
	{"Lain", 32, 32, 4, 8},
	{"Lain", 320, 240, 8, 16},
}

var patterns = []string{"flat", "gradient", "noise", "impulse"}

func main() {
	baseDir := filepath.Join("testdata", "generated")
	for _, cfg := range configs {
		dir := filepath.Join(baseDir, cfg.Format, fmt.Sprintf("%dx%d_q%d", cfg.Width, cfg.Height, cfg.Qscale))
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", dir, err)
			os.Exit(1)
		}
		for _, pattern := range patterns {
			if err := generateTestCase(dir, pattern, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating %s/%s: %v\n", dir, pattern, err)
			} else {
				fmt.Printf("Generated %s/%s\n", dir, pattern)
			}
		}
	}
	fmt.Println("\nDone!")
}

func generateTestCase(dir, pattern string, cfg FrameConfig) error {
	codes := generateCodes(pattern, cfg)
	c, err := psxstr.NewCompressor(formats[cfg.Format])
	if err != nil {
		return err
	}
	frame, err := c.Compress(mdec.NewCodeStream(codes), cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("compressing: %w", err)
	}

	words := make([]byte, 2*len(codes))
	for i, code := range codes {
		binary.LittleEndian.PutUint16(words[2*i:], code.Word())
	}
	meta, err := json.MarshalIndent(Metadata{
		FrameConfig: cfg,
		Pattern:     pattern,
		Codes:       len(codes),
		Size:        len(frame),
	}, "", "  ")
	if err != nil {
		return err
	}

	base := filepath.Join(dir, pattern)
	if err := os.WriteFile(base+".bin", frame, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(base+".mdec", words, 0644); err != nil {
		return err
	}
	return os.WriteFile(base+".json", meta, 0644)
}

// generateCodes builds a frame's MDEC codes for a test pattern.
func generateCodes(pattern string, cfg FrameConfig) []mdec.Code {
	maxLevel := mdec.MaxBottom
	if cfg.Format == "Lain" {
		maxLevel = 255
	}
	rng := rand.New(rand.NewPCG(uint64(cfg.Width), uint64(cfg.Height)))

	var codes []mdec.Code
	blocks := mdec.BlockCount(cfg.Width, cfg.Height)
	for i := 0; i < blocks; i++ {
		block := mdec.Block(i % mdec.BlocksPerMacroBlock)
		q := cfg.Qscale
		switch {
		case cfg.Format == "Iki":
			q += i % 2
		case cfg.Format == "Lain" && block.IsChroma():
			q = cfg.ChromaQscale
		}

		switch pattern {
		case "flat":
			codes = append(codes, mdec.Code{Top: q})
		case "gradient":
			codes = append(codes,
				mdec.Code{Top: q, Bottom: (i*37)%1024 - 512},
				mdec.Code{Top: 0, Bottom: 1 + i%3},
				mdec.Code{Top: 1, Bottom: -1})
		case "noise":
			codes = append(codes, mdec.Code{Top: q, Bottom: rng.IntN(1024) - 512})
			for pos := 0; ; {
				run := rng.IntN(4)
				if pos+run+1 >= 40 {
					break
				}
				pos += run + 1
				level := 1 + rng.IntN(maxLevel)
				if rng.IntN(2) == 0 {
					level = -level
				}
				codes = append(codes, mdec.Code{Top: run, Bottom: level})
			}
		case "impulse":
			codes = append(codes, mdec.Code{Top: q, Bottom: mdec.MaxBottom})
			if i == 0 {
				codes = append(codes, mdec.Code{Top: 62, Bottom: -maxLevel})
			}
		}
		codes = append(codes, mdec.EndOfData())
	}
	return codes
}
