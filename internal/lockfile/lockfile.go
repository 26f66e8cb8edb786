package lockfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const DefaultLockFileName = "deps.lock.yml"

// File records the exact commit each dependency resolved to, so a tree can
// be reproduced even when the manifest pins branches.
type File struct {
	GeneratedAt string         `yaml:"generatedAt"`
	Deps        map[string]Dep `yaml:"deps"`
}

type Dep struct {
	URL    string `yaml:"url"`
	Path   string `yaml:"path"`
	Commit string `yaml:"commit"`
}

func New(generatedAt string) *File {
	return &File{
		GeneratedAt: generatedAt,
		Deps:        map[string]Dep{},
	}
}

// Pin records the resolved commit for a dependency.
func (f *File) Pin(name string, dep Dep) {
	f.Deps[name] = dep
}

func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("could not marshal lock file: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write lock file: %v", err)
	}
	return nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read lock file: %v", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not unmarshal lock file: %v", err)
	}
	return &f, nil
}
