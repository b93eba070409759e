package config

import (
	"fmt"
	"sort"
)

// Variant is a named tilt tuning. Each one reproduces one of the scene
// variants the app shipped with; they differ only in how a motion sample is
// turned into gravity.
type Variant string

const (
	VariantClassic Variant = "classic" // attitude x5
	VariantGravity Variant = "gravity" // gravity vector x6
	VariantEarth   Variant = "earth"   // gravity vector x9.8
	VariantGentle  Variant = "gentle"  // attitude x1
	VariantMicro   Variant = "micro"   // attitude x0.001
)

var variants = map[Variant]TiltConfig{
	VariantClassic: {Source: TiltAttitude, Scale: 5},
	VariantGravity: {Source: TiltGravity, Scale: 6},
	VariantEarth:   {Source: TiltGravity, Scale: 9.8},
	VariantGentle:  {Source: TiltAttitude, Scale: 1},
	VariantMicro:   {Source: TiltAttitude, Scale: 0.001},
}

// TiltForVariant returns the tilt mapping for a named variant.
func TiltForVariant(v Variant) (TiltConfig, error) {
	t, ok := variants[v]
	if !ok {
		return TiltConfig{}, fmt.Errorf("config: unknown variant %q (have %v)", v, Variants())
	}
	return t, nil
}

// Variants lists the known variant names, sorted.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for v := range variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ApplyMazeVariant overrides the maze tilt mapping. An empty variant keeps the
// loaded config.
func ApplyMazeVariant(cfg *MazeConfig, v Variant) error {
	if v == "" {
		return nil
	}
	t, err := TiltForVariant(v)
	if err != nil {
		return err
	}
	cfg.Tilt = t
	return nil
}

// ApplyBottlesVariant overrides the bottles tilt mapping.
func ApplyBottlesVariant(cfg *BottlesConfig, v Variant) error {
	if v == "" {
		return nil
	}
	t, err := TiltForVariant(v)
	if err != nil {
		return err
	}
	cfg.Tilt = t
	return nil
}
