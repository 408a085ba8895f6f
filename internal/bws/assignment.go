package bws

import (
	"fmt"

	"github.com/google/uuid"
)

// AssignmentKind selects how imported secrets are attached to projects.
type AssignmentKind int

const (
	// AssignNone leaves secrets without a project.
	AssignNone AssignmentKind = iota
	// AssignExisting attaches every secret to an existing project.
	AssignExisting
	// AssignNew declares a new project and attaches every secret to it.
	AssignNew
)

// String returns the string representation of the AssignmentKind.
func (k AssignmentKind) String() string {
	switch k {
	case AssignNone:
		return "none"
	case AssignExisting:
		return "existing"
	case AssignNew:
		return "new"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ProjectAssignment is the project-assignment policy for a run. Build one
// with NoProject, ExistingProject or NewProject; the zero value is NoProject.
type ProjectAssignment struct {
	kind AssignmentKind
	id   uuid.UUID
	name string
}

// NoProject assigns no project to the secrets.
func NoProject() ProjectAssignment {
	return ProjectAssignment{kind: AssignNone}
}

// ExistingProject assigns all secrets to the project with the given ID.
func ExistingProject(id uuid.UUID) ProjectAssignment {
	return ProjectAssignment{kind: AssignExisting, id: id}
}

// NewProject declares a project with the given name and assigns all secrets to it.
func NewProject(name string) ProjectAssignment {
	return ProjectAssignment{kind: AssignNew, name: name}
}

// Kind returns the assignment variant.
func (a ProjectAssignment) Kind() AssignmentKind {
	return a.kind
}

// ProjectID returns the existing project ID. Only meaningful for AssignExisting.
func (a ProjectAssignment) ProjectID() (uuid.UUID, bool) {
	return a.id, a.kind == AssignExisting
}

// ProjectName returns the new project name. Only meaningful for AssignNew.
func (a ProjectAssignment) ProjectName() (string, bool) {
	return a.name, a.kind == AssignNew
}

func (a ProjectAssignment) String() string {
	switch a.Kind() {
	case AssignExisting:
		return fmt.Sprintf("existing project %s", a.id)
	case AssignNew:
		return fmt.Sprintf("new project %q", a.name)
	default:
		return "no project"
	}
}
