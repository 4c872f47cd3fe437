// ABOUTME: Submission audit log CLI commands
// ABOUTME: Lists and inspects recorded signing submissions from the local database
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/openhousecrm/docpipe/db"
	"github.com/openhousecrm/docpipe/docuseal"
	"github.com/openhousecrm/docpipe/models"
)

// ListSubmissionsCommand prints recorded submissions, newest first.
func ListSubmissionsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("submissions list", flag.ExitOnError)
	docSlug := fs.String("doc", "", "Filter by document slug")
	limit := fs.Int("limit", 50, "Maximum number of submissions to show")
	_ = fs.Parse(args)

	records, err := db.ListSubmissions(database, *docSlug, *limit)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No submissions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOCUMENT\tSUBMISSION\tSTATUS\tCREATED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.DocumentSlug, r.SubmissionID, r.Status,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
	fmt.Printf("\n%d submission(s)\n", len(records))
	return nil
}

// ShowSubmissionCommand prints the full record for one submission.
func ShowSubmissionCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("submissions show", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: docpipe submissions show <id>")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", fs.Arg(0), err)
	}

	record, err := db.GetSubmission(database, id)
	if err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}
	if record == nil {
		return fmt.Errorf("submission %s not found", id)
	}

	fmt.Printf("ID:          %s\n", record.ID)
	fmt.Printf("Document:    %s\n", record.DocumentSlug)
	fmt.Printf("Submission:  %s\n", record.SubmissionID)
	fmt.Printf("Template:    %s\n", record.TemplateID)
	fmt.Printf("Status:      %s\n", record.Status)
	if record.SignerEmails != "" {
		fmt.Printf("Signers:     %s\n", record.SignerEmails)
	}
	fmt.Printf("Created:     %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", record.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// ArchiveSubmissionCommand voids a sent envelope and marks its audit
// record archived.
func ArchiveSubmissionCommand(client *docuseal.Client, database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("submissions archive", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: docpipe submissions archive <id>")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", fs.Arg(0), err)
	}

	record, err := db.GetSubmission(database, id)
	if err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}
	if record == nil {
		return fmt.Errorf("submission %s not found", id)
	}
	if record.Status == models.SubmissionStatusArchived {
		fmt.Printf("Submission %s is already archived\n", record.SubmissionID)
		return nil
	}

	if err := client.ArchiveSubmission(context.Background(), record.SubmissionID); err != nil {
		return fmt.Errorf("failed to archive submission %s: %w", record.SubmissionID, err)
	}
	if err := db.UpdateSubmissionStatus(database, id, models.SubmissionStatusArchived); err != nil {
		return fmt.Errorf("submission %s archived but audit record update failed: %w", record.SubmissionID, err)
	}

	fmt.Printf("✓ Submission %s archived (%s)\n", record.SubmissionID, record.DocumentSlug)
	if client.MockMode() {
		fmt.Println("  ⚠ mock mode: no API key configured, nothing was voided upstream")
	}
	return nil
}
