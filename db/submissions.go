// ABOUTME: Submission audit log database operations
// ABOUTME: Records every live send so operators can trace generated documents
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openhousecrm/docpipe/models"
)

func RecordSubmission(db *sql.DB, record *models.SubmissionRecord) error {
	record.ID = uuid.New()
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Status == "" {
		record.Status = models.SubmissionStatusSent
	}

	_, err := db.Exec(`
		INSERT INTO submissions (id, document_slug, submission_id, template_id, status, signer_emails, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID.String(), record.DocumentSlug, record.SubmissionID, record.TemplateID, record.Status, record.SignerEmails, record.CreatedAt, record.UpdatedAt)

	return err
}

func GetSubmission(db *sql.DB, id uuid.UUID) (*models.SubmissionRecord, error) {
	record := &models.SubmissionRecord{}
	err := db.QueryRow(`
		SELECT id, document_slug, submission_id, template_id, status, signer_emails, created_at, updated_at
		FROM submissions WHERE id = ?
	`, id.String()).Scan(
		&record.ID,
		&record.DocumentSlug,
		&record.SubmissionID,
		&record.TemplateID,
		&record.Status,
		&record.SignerEmails,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

func ListSubmissions(db *sql.DB, documentSlug string, limit int) ([]models.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, document_slug, submission_id, template_id, status, signer_emails, created_at, updated_at
		FROM submissions
	`
	args := []any{}
	if documentSlug != "" {
		query += ` WHERE document_slug = ?`
		args = append(args, documentSlug)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SubmissionRecord
	for rows.Next() {
		var r models.SubmissionRecord
		if err := rows.Scan(&r.ID, &r.DocumentSlug, &r.SubmissionID, &r.TemplateID, &r.Status, &r.SignerEmails, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func UpdateSubmissionStatus(db *sql.DB, id uuid.UUID, status string) error {
	result, err := db.Exec(`
		UPDATE submissions SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id.String())
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("submission %s not found", id)
	}
	return nil
}
