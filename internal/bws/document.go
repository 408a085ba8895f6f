// Package bws builds the Bitwarden Secrets Manager bulk-import document.
package bws

import (
	"github.com/google/uuid"
)

// Project is a named grouping that secrets reference by ID.
type Project struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Secret is a single key/value entry of the import document.
type Secret struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	// Note is always serialized, as an empty string when there is no comment.
	Note string `json:"note"`
	// ProjectIDs holds zero or one project ID and is never nil in generated documents.
	ProjectIDs []uuid.UUID `json:"projectIds"`
	ID         uuid.UUID   `json:"id"`
}

// Document mirrors the import JSON: the projects to create and the secrets to import.
type Document struct {
	Projects []Project `json:"projects"`
	Secrets  []Secret  `json:"secrets"`
}

// ProjectIDs returns the distinct project IDs referenced by the secrets, in
// order of first use.
func (d *Document) ProjectIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, s := range d.Secrets {
		for _, id := range s.ProjectIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
