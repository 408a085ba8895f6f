// Package config holds the validated run configuration for a conversion.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/nvinuesa/envporter/internal/bws"
	"github.com/nvinuesa/envporter/internal/security"
)

// Configuration errors.
var (
	ErrMissingInput       = errors.New("dotenv path is required")
	ErrConflictingProject = errors.New("--project-id and --new-project-name are mutually exclusive")
)

// Options is the validated configuration of a single conversion run.
type Options struct {
	// DotenvPath is the dotenv file to read.
	DotenvPath string
	// OutputFile is the destination path. Empty means stdout.
	OutputFile string
	// ParseComments turns inline comments into secret notes.
	ParseComments bool
	// LeadingComments also uses a comment line directly above a variable.
	LeadingComments bool
	// Verbose enables debug logging on stderr.
	Verbose bool
	// ProjectID assigns all secrets to an existing project.
	ProjectID *uuid.UUID
	// NewProjectName declares a new project for all secrets. Nil means no
	// name was given; an explicit empty name is invalid.
	NewProjectName *string
	// ForceOverwrite allows replacing an existing output file.
	ForceOverwrite bool
}

// Validate checks the options for completeness and consistency.
func (o *Options) Validate() error {
	if o.DotenvPath == "" {
		return ErrMissingInput
	}

	if o.ProjectID != nil && o.NewProjectName != nil {
		return ErrConflictingProject
	}

	if o.ProjectID != nil && *o.ProjectID == uuid.Nil {
		return fmt.Errorf("invalid project ID: nil UUID")
	}

	if o.NewProjectName != nil {
		if err := security.ValidateProjectName(*o.NewProjectName); err != nil {
			return fmt.Errorf("invalid new project name: %w", err)
		}
	}

	return nil
}

// Assignment maps the project options onto a project assignment policy.
func (o *Options) Assignment() bws.ProjectAssignment {
	switch {
	case o.ProjectID != nil:
		return bws.ExistingProject(*o.ProjectID)
	case o.NewProjectName != nil:
		return bws.NewProject(*o.NewProjectName)
	default:
		return bws.NoProject()
	}
}

// ToStdout reports whether the document goes to stdout.
func (o *Options) ToStdout() bool {
	return o.OutputFile == ""
}

// ParseProjectID parses a project ID given on the command line.
func ParseProjectID(s string) (*uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID %q: %w", s, err)
	}
	return &id, nil
}

// Defaults are optional values loaded from a YAML file. Unset fields leave
// the corresponding option untouched.
type Defaults struct {
	ParseComments   *bool   `yaml:"parse_comments"`
	LeadingComments *bool   `yaml:"leading_comments"`
	ProjectID       *string `yaml:"project_id"`
	NewProjectName  *string `yaml:"new_project_name"`
	ForceOverwrite  *bool   `yaml:"force_overwrite"`
}

// LoadDefaults reads a YAML defaults file.
func LoadDefaults(path string) (Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults{}, fmt.Errorf("no config file found at %s", path)
		}
		return Defaults{}, fmt.Errorf("read config: %w", err)
	}

	var d Defaults
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return d, nil
}

// Apply copies defaults into o for every field not explicitly set.
// The set callback reports whether a flag with the given name was given
// on the command line; explicit flags always win.
func (d Defaults) Apply(o *Options, set func(flag string) bool) error {
	if d.ParseComments != nil && !set("parse-comments") {
		o.ParseComments = *d.ParseComments
	}
	if d.LeadingComments != nil && !set("leading-comments") {
		o.LeadingComments = *d.LeadingComments
	}
	if d.ForceOverwrite != nil && !set("force") {
		o.ForceOverwrite = *d.ForceOverwrite
	}

	// A project given on the command line in either form replaces both defaults.
	if set("project-id") || set("new-project-name") {
		return nil
	}
	if d.ProjectID != nil {
		id, err := ParseProjectID(*d.ProjectID)
		if err != nil {
			return err
		}
		o.ProjectID = id
	}
	if d.NewProjectName != nil {
		name := *d.NewProjectName
		o.NewProjectName = &name
	}
	return nil
}
