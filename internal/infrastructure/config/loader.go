package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	TuningFile     = "tuning.json"
	AnimationsFile = "animations.yaml"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Tuning     *TuningConfig
	Animations *AnimationSet
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTuning loads and validates tuning.json
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	data, err := fs.ReadFile(l.fsys, TuningFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TuningFile, err)
	}

	var cfg TuningConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TuningFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TuningFile, err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAnimations loads animations.yaml and checks every rule name in it
func (l *Loader) LoadAnimations() (*AnimationSet, error) {
	data, err := fs.ReadFile(l.fsys, AnimationsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", AnimationsFile, err)
	}

	var set AnimationSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", AnimationsFile, err)
	}

	for _, k := range set.Kinds {
		for _, c := range k.Clips {
			if _, err := ParseRule(c.Rule); err != nil {
				return nil, fmt.Errorf("invalid %s: kind %s: %w", AnimationsFile, k.Name, err)
			}
		}
		for _, e := range k.Events {
			if _, err := ParseRule(e.Rule); err != nil {
				return nil, fmt.Errorf("invalid %s: kind %s: %w", AnimationsFile, k.Name, err)
			}
		}
	}

	return &set, nil
}

// LoadAll loads tuning.json and animations.yaml
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	animations, err := l.LoadAnimations()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning:     tuning,
		Animations: animations,
	}, nil
}
