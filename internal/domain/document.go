package domain

import "time"

// DocumentType is the fixed set of document kinds.
type DocumentType string

const (
	DocumentTypeDoc          DocumentType = "doc"
	DocumentTypeSpreadsheet  DocumentType = "xlsx"
	DocumentTypePDF          DocumentType = "pdf"
	DocumentTypePresentation DocumentType = "ppt"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeDoc, DocumentTypeSpreadsheet, DocumentTypePDF, DocumentTypePresentation:
		return true
	}
	return false
}

// Document is a stored text document. Every content or metadata edit bumps
// LastModified. SharedWith holds non-owning user references.
type Document struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         DocumentType `json:"type"`
	Content      string       `json:"content"`
	LastModified time.Time    `json:"lastModified"`
	SharedWith   []string     `json:"sharedWith"`
	Location     string       `json:"location,omitempty"`
}

// Clone returns a copy of the document with its own share-list storage.
func (d Document) Clone() Document {
	out := d
	if d.SharedWith != nil {
		out.SharedWith = append([]string(nil), d.SharedWith...)
	}
	return out
}
