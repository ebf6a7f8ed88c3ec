package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/summarizer"
)

func uploadTestDocument(t *testing.T, jr *JSONRepository, userID string, name string, content string) *models.Document {
	t.Helper()
	doc, err := jr.UploadDocument(&models.UploadDocumentRequest{
		UserID:       userID,
		Title:        strings.TrimSuffix(name, filepath.Ext(name)),
		Type:         "notes",
		OriginalName: name,
		File:         strings.NewReader(content),
	})
	require.NoError(t, err)
	return doc
}

func TestUploadDocument(t *testing.T) {
	jr, clock := newTestRepository(t)

	doc := uploadTestDocument(t, jr, "g1", "notes.txt", "hello world")
	assert.Equal(t, "g1", doc.UserID)
	assert.Equal(t, "notes", doc.Title)
	assert.Equal(t, "notes.txt", doc.OriginalName)
	assert.Equal(t, int64(11), doc.Size)
	assert.Equal(t, clock.Now(), doc.UploadedAt)
	assert.NotEqual(t, "notes.txt", doc.FileName)
	assert.False(t, doc.IsSummarized)

	other := uploadTestDocument(t, jr, "g1", "notes.txt", "again")
	assert.NotEqual(t, doc.FileName, other.FileName)

	docs, err := jr.ListDocuments("g1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestUploadDocumentRequiresFile(t *testing.T) {
	jr, _ := newTestRepository(t)

	_, err := jr.UploadDocument(&models.UploadDocumentRequest{UserID: "g1", Title: "empty"})
	assert.Equal(t, qerrors.MissingFileError, err)
}

func TestDeleteDocumentKeepsOthersInOrder(t *testing.T) {
	jr, _ := newTestRepository(t)

	a := uploadTestDocument(t, jr, "g1", "a.txt", "a")
	b := uploadTestDocument(t, jr, "g2", "b.txt", "b")
	c := uploadTestDocument(t, jr, "g1", "c.txt", "c")
	d := uploadTestDocument(t, jr, "g1", "d.txt", "d")

	before, err := jr.documents.all()
	require.NoError(t, err)

	require.NoError(t, jr.DeleteDocument(&models.DocumentRequest{UserID: "g1", DocumentID: c.ID}))

	after, err := jr.documents.all()
	require.NoError(t, err)
	assert.Equal(t, []*models.Document{before[0], before[1], before[3]}, after)
	assert.Equal(t, []string{a.ID, b.ID, d.ID}, []string{after[0].ID, after[1].ID, after[2].ID})

	_, err = os.Stat(filepath.Join(jr.uploadDir(t), c.FileName))
	assert.True(t, os.IsNotExist(err))

	err = jr.DeleteDocument(&models.DocumentRequest{UserID: "g1", DocumentID: c.ID})
	assert.Equal(t, qerrors.DocumentNotFoundError, err)
}

func TestDocumentsOfOtherUsersAreHidden(t *testing.T) {
	jr, _ := newTestRepository(t)
	doc := uploadTestDocument(t, jr, "g1", "a.txt", "a")

	docs, err := jr.ListDocuments("g2")
	require.NoError(t, err)
	assert.Empty(t, docs)

	err = jr.DeleteDocument(&models.DocumentRequest{UserID: "g2", DocumentID: doc.ID})
	assert.Equal(t, qerrors.DocumentNotFoundError, err)

	_, err = jr.SummarizeDocument(context.Background(), &models.DocumentRequest{UserID: "g2", DocumentID: doc.ID})
	assert.Equal(t, qerrors.DocumentNotFoundError, err)
}

func TestSummarizeDocument(t *testing.T) {
	jr, _ := newTestRepository(t)
	text := uploadTestDocument(t, jr, "g1", "notes.txt", "Goroutines   are cheap.")
	binary := uploadTestDocument(t, jr, "g1", "slides.pdf", "%PDF-1.4")

	doc, err := jr.SummarizeDocument(context.Background(), &models.DocumentRequest{UserID: "g1", DocumentID: text.ID})
	require.NoError(t, err)
	assert.True(t, doc.IsSummarized)
	assert.Equal(t, summarizer.DemoSummary+" Excerpt: Goroutines are cheap.", doc.Summary)

	doc, err = jr.SummarizeDocument(context.Background(), &models.DocumentRequest{UserID: "g1", DocumentID: binary.ID})
	require.NoError(t, err)
	assert.Equal(t, summarizer.DemoSummary, doc.Summary)

	docs, err := jr.ListDocuments("g1")
	require.NoError(t, err)
	for _, d := range docs {
		assert.True(t, d.IsSummarized)
		assert.NotEmpty(t, d.Summary)
	}
}

// uploadDir is the directory newTestRepository stores uploads in.
func (jr *JSONRepository) uploadDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(filepath.Dir(jr.store.Dir()), "uploads")
}
