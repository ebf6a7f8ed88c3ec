package models

import (
	"io"
	"time"
)

// Document is a file a guest uploaded for summarization.
type Document struct {
	ID           string    `json:"id" mapstructure:"id"`
	UserID       string    `json:"userId" mapstructure:"userId"`
	Title        string    `json:"title" mapstructure:"title"`
	Type         string    `json:"type" mapstructure:"type"`
	FileName     string    `json:"fileName" mapstructure:"fileName"`
	OriginalName string    `json:"originalName" mapstructure:"originalName"`
	Size         int64     `json:"size" mapstructure:"size"`
	UploadedAt   time.Time `json:"uploadedAt" mapstructure:"uploadedAt"`
	// Summary is empty until the document is summarized. IsSummarized implies a non-empty Summary.
	Summary      string `json:"summary" mapstructure:"summary"`
	IsSummarized bool   `json:"isSummarized" mapstructure:"isSummarized"`
}

type UploadDocumentRequest struct {
	UserID       string
	Title        string
	Type         string
	OriginalName string
	File         io.Reader
}

type DocumentRequest struct {
	UserID     string
	DocumentID string
}
