// ABOUTME: Tests for the submissions CLI commands
// ABOUTME: Covers archiving a recorded submission through the mock signing client
package cli

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhousecrm/docpipe/db"
	"github.com/openhousecrm/docpipe/docuseal"
	"github.com/openhousecrm/docpipe/models"
)

func TestArchiveSubmissionCommand(t *testing.T) {
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "docpipe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	record := &models.SubmissionRecord{
		DocumentSlug: "listing-agreement",
		SubmissionID: "sub-123",
		TemplateID:   "184417",
	}
	require.NoError(t, db.RecordSubmission(database, record))

	client := docuseal.NewClient(docuseal.Config{})
	require.NoError(t, ArchiveSubmissionCommand(client, database, []string{record.ID.String()}))

	got, err := db.GetSubmission(database, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SubmissionStatusArchived, got.Status)

	// Archiving again is a no-op, not an error.
	require.NoError(t, ArchiveSubmissionCommand(client, database, []string{record.ID.String()}))
}

func TestArchiveSubmissionCommandErrors(t *testing.T) {
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "docpipe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	client := docuseal.NewClient(docuseal.Config{})

	err = ArchiveSubmissionCommand(client, database, []string{"not-a-uuid"})
	assert.ErrorContains(t, err, "invalid submission id")

	err = ArchiveSubmissionCommand(client, database, []string{uuid.NewString()})
	assert.ErrorContains(t, err, "not found")
}
