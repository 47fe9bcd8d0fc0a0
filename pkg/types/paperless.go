// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Correspondent is a named entity documents are attributed to.
// Field names follow the paperless-ngx wire format.
type Correspondent struct {
	// ID is the remote primary key.
	ID int `json:"id" yaml:"id"`

	// Name is free text and may contain case/whitespace variants of the
	// same real-world entity.
	Name string `json:"name" yaml:"name"`

	// DocumentCount is the number of documents attributed to this
	// correspondent, as reported by the server.
	DocumentCount int `json:"document_count" yaml:"document_count"`

	// LastCorrespondence is the server-reported timestamp of the most
	// recent document, when available.
	LastCorrespondence string `json:"last_correspondence,omitempty" yaml:"last_correspondence,omitempty"`
}

// Document is a paperless-ngx document. Only the fields this tool reads
// are mapped.
type Document struct {
	ID int `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// Correspondent is the owning correspondent ID, nil when unassigned.
	Correspondent *int `json:"correspondent" yaml:"correspondent"`

	// Created is the document creation timestamp as reported by the API.
	Created string `json:"created" yaml:"created"`

	// ArchiveSerialNumber is set when the document has an ASN assigned.
	ArchiveSerialNumber *int `json:"archive_serial_number,omitempty" yaml:"archive_serial_number,omitempty"`
}
