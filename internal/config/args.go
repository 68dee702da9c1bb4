package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSize parses "WxH" into positive dimensions.
func ParseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	if width, err = strconv.Atoi(strings.TrimSpace(w)); err != nil {
		return 0, 0, fmt.Errorf("size %q: width: %w", s, err)
	}
	if height, err = strconv.Atoi(strings.TrimSpace(h)); err != nil {
		return 0, 0, fmt.Errorf("size %q: height: %w", s, err)
	}
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

// ParseFloats parses a comma separated number list, as taken by
// camera.Camera.Setup.
func ParseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("number list %q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseVec3 parses "x,y,z".
func ParseVec3(s string) ([3]float64, error) {
	v, err := ParseFloats(s)
	if err != nil {
		return [3]float64{}, err
	}
	if len(v) != 3 {
		return [3]float64{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	return [3]float64{v[0], v[1], v[2]}, nil
}
