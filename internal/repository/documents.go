package repository

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/summarizer"
)

// maxExtractBytes bounds how much of a text document is handed to the summarizer.
const maxExtractBytes = 1 << 20

var textExtensions = []string{".txt", ".md", ".csv", ".json"}

func ownedDocument(req *models.DocumentRequest) func(*models.Document) bool {
	return func(d *models.Document) bool {
		return d.ID == req.DocumentID && d.UserID == req.UserID
	}
}

// ListDocuments returns the documents uploaded by a user in upload order.
func (jr *JSONRepository) ListDocuments(userID string) ([]*models.Document, error) {
	return jr.documents.filter(func(d *models.Document) bool {
		return d.UserID == userID
	})
}

// UploadDocument stores the file under a generated name and records the document.
func (jr *JSONRepository) UploadDocument(req *models.UploadDocumentRequest) (*models.Document, error) {
	if req.File == nil {
		return nil, qerrors.MissingFileError
	}
	if err := ValidateID(req.UserID); err != nil {
		return nil, err
	}

	fileName, size, err := jr.uploads.Save(req.OriginalName, req.File)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Title:        strings.TrimSpace(req.Title),
		Type:         req.Type,
		FileName:     fileName,
		OriginalName: filepath.Base(req.OriginalName),
		Size:         size,
		UploadedAt:   jr.now().UTC(),
	}
	if doc.Title == "" {
		doc.Title = doc.OriginalName
	}

	if err := jr.documents.insert(doc); err != nil {
		if rerr := jr.uploads.Remove(fileName); rerr != nil {
			glog.Warningf("failed to remove orphaned upload %s: %v", fileName, rerr)
		}
		return nil, err
	}
	return doc, nil
}

// SummarizeDocument runs the summarizer over the document and stores the summary.
func (jr *JSONRepository) SummarizeDocument(ctx context.Context, req *models.DocumentRequest) (*models.Document, error) {
	doc, err := jr.documents.find(ownedDocument(req), qerrors.DocumentNotFoundError)
	if err != nil {
		return nil, err
	}

	summary, err := jr.summarizer.Summarize(ctx, doc.Title, jr.extractText(doc))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(summary) == "" {
		summary = summarizer.DemoSummary
	}

	return jr.documents.update(ownedDocument(req), qerrors.DocumentNotFoundError, func(d *models.Document) error {
		d.Summary = summary
		d.IsSummarized = true
		return nil
	})
}

// extractText returns the content of plain text documents. Other formats yield no text.
func (jr *JSONRepository) extractText(doc *models.Document) string {
	if !contains(textExtensions, strings.ToLower(filepath.Ext(doc.FileName))) && !strings.HasPrefix(doc.Type, "text/") {
		return ""
	}

	f, err := jr.uploads.Open(doc.FileName)
	if err != nil {
		glog.Warningf("failed to open document %s: %v", doc.ID, err)
		return ""
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxExtractBytes))
	if err != nil {
		glog.Warningf("failed to read document %s: %v", doc.ID, err)
		return ""
	}
	return string(content)
}

// DeleteDocument removes the document record and its stored file.
func (jr *JSONRepository) DeleteDocument(req *models.DocumentRequest) error {
	doc, err := jr.documents.remove(ownedDocument(req), qerrors.DocumentNotFoundError)
	if err != nil {
		return err
	}

	if err := jr.uploads.Remove(doc.FileName); err != nil {
		glog.Warningf("failed to remove file of document %s: %v", doc.ID, err)
	}
	return nil
}
