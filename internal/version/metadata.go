package version

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed project.toml
var projectTOML []byte

// Version overrides the embedded version when set at build time:
//
//	go build -ldflags "-X github.com/AndreyAkinshin/treecmp/internal/version.Version=1.2.3"
var Version = ""

// fallbackName is used when the embedded metadata cannot be read.
const fallbackName = "treecmp"

// Metadata describes the application.
type Metadata struct {
	Name    string
	Author  string
	Version string
}

type projectFile struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Authors []struct {
			Name string `toml:"name"`
		} `toml:"authors"`
	} `toml:"project"`
}

var (
	loadOnce sync.Once
	loaded   Metadata
	loadErr  error
)

// Load parses project metadata from TOML data with a [project] table.
func Load(data []byte) (Metadata, error) {
	var pf projectFile
	if _, err := toml.Decode(string(data), &pf); err != nil {
		return Metadata{}, fmt.Errorf("parse project metadata: %w", err)
	}

	md := Metadata{
		Name:    pf.Project.Name,
		Version: pf.Project.Version,
	}
	if md.Name == "" {
		return Metadata{}, errors.New("project metadata: name is empty")
	}
	if len(pf.Project.Authors) > 0 {
		md.Author = pf.Project.Authors[0].Name
	}
	if err := Validate(md.Version); err != nil {
		return Metadata{}, fmt.Errorf("project metadata: %w", err)
	}
	return md, nil
}

// Current returns the embedded metadata, with Version applied on top.
func Current() (Metadata, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Load(projectTOML)
	})
	md := loaded
	if loadErr != nil {
		md = Metadata{Name: fallbackName, Version: "dev"}
	}
	if Version != "" {
		if err := Validate(Version); err != nil {
			return md, fmt.Errorf("build version: %w", err)
		}
		md.Version = Version
	}
	return md, loadErr
}

// Info returns the application name, author and version.
func Info() (name, author, version string) {
	md, _ := Current()
	return md.Name, md.Author, md.Version
}

// Name returns the application name. It names the default logger.
func Name() string {
	name, _, _ := Info()
	return name
}
