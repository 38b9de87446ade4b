package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultDiffuse is used for faces without a known material.
var DefaultDiffuse = [3]float32{0.8, 0.8, 0.8}

// Material is a Wavefront MTL material. Only the color terms are kept.
type Material struct {
	Name      string
	Ambient   [3]float32 // Ka
	Diffuse   [3]float32 // Kd
	Specular  [3]float32 // Ks
	Shininess float32    // Ns
	Opacity   float32    // d, or 1-Tr
}

// ParseMTL parses a material library, keyed by material name.
func ParseMTL(data []byte) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var cur *Material

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == "newmtl" {
			name := restOfLine(line, fields[0])
			cur = &Material{Name: name, Diffuse: DefaultDiffuse, Opacity: 1}
			materials[name] = cur
			continue
		}
		if cur == nil {
			// statements before the first newmtl have nothing to apply to
			continue
		}

		var err error
		switch fields[0] {
		case "Ka":
			cur.Ambient, err = parseVec3(fields[1:])
		case "Kd":
			cur.Diffuse, err = parseVec3(fields[1:])
		case "Ks":
			cur.Specular, err = parseVec3(fields[1:])
		case "Ns":
			cur.Shininess, err = parseScalar(fields[1:])
		case "d":
			cur.Opacity, err = parseScalar(fields[1:])
		case "Tr":
			var tr float32
			if tr, err = parseScalar(fields[1:]); err == nil {
				cur.Opacity = 1 - tr
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q: %v", ErrInvalidMTL, lineNo, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}

	return materials, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (map[string]*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data)
}

func parseScalar(fields []string) (float32, error) {
	if len(fields) < 1 {
		return 0, errMissingValue
	}
	f, err := strconv.ParseFloat(fields[0], 32)
	return float32(f), err
}
