package bws

import (
	"github.com/google/uuid"

	"github.com/nvinuesa/envporter/internal/model"
)

// Generate creates an import document from parsed variables.
//
// Secrets keep the order of vars, duplicates included, and each secret reuses
// its variable's TempID. The assignment decides whether a project is declared
// and which ID, if any, every secret references. Generate never fails.
func Generate(vars []model.Variable, assignment ProjectAssignment) *Document {
	projects := make([]Project, 0, 1)

	var assignedID *uuid.UUID
	if id, ok := assignment.ProjectID(); ok {
		assignedID = &id
	}
	if name, ok := assignment.ProjectName(); ok {
		id := uuid.New()
		projects = append(projects, Project{ID: id, Name: name})
		assignedID = &id
	}

	secrets := make([]Secret, 0, len(vars))
	for _, v := range vars {
		secrets = append(secrets, mapVariableToSecret(v, assignedID))
	}

	return &Document{
		Projects: projects,
		Secrets:  secrets,
	}
}

// mapVariableToSecret converts a single variable.
func mapVariableToSecret(v model.Variable, projectID *uuid.UUID) Secret {
	projectIDs := []uuid.UUID{}
	if projectID != nil {
		projectIDs = append(projectIDs, *projectID)
	}

	return Secret{
		Key:        v.Key,
		Value:      v.Value,
		Note:       v.Note(),
		ProjectIDs: projectIDs,
		ID:         v.TempID,
	}
}
