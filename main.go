// ABOUTME: Entry point for the docpipe document generation CLI
// ABOUTME: Routes to docs, generate, automap, and submissions commands
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/openhousecrm/docpipe/cli"
	"github.com/openhousecrm/docpipe/db"
	"github.com/openhousecrm/docpipe/definitions"
	"github.com/openhousecrm/docpipe/docuseal"
)

const version = "0.1.0"

func main() {
	// Optional .env file for API credentials and local overrides
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	defsDir := flag.String("definitions-dir", "", "Document definitions directory (default: ~/.local/share/docpipe/definitions)")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/docpipe/docpipe.db)")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("docpipe version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "docs":
		if len(commandArgs) == 0 {
			fmt.Println("Error: docs requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		docsCommand := commandArgs[0]
		docsArgs := commandArgs[1:]

		dir := getDefinitionsDir(*defsDir)
		switch docsCommand {
		case "list":
			loader := mustLoadDefinitions(dir)
			if err := cli.ListDocsCommand(loader, docsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "show":
			loader := mustLoadDefinitions(dir)
			if err := cli.ShowDocCommand(loader, docsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "validate":
			if err := cli.ValidateDocsCommand(dir, docsArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown docs command: %s\n\n", docsCommand)
			printUsage()
			os.Exit(1)
		}

	case "generate":
		loader := mustLoadDefinitions(getDefinitionsDir(*defsDir))
		client := docuseal.NewClient(docuseal.ConfigFromEnv())

		finalDBPath := getDatabasePath(*dbPath)
		database, err := db.OpenDatabase(finalDBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if err := cli.GenerateCommand(loader, client, database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "automap":
		client := docuseal.NewClient(docuseal.ConfigFromEnv())
		if err := cli.AutomapCommand(client, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "submissions":
		finalDBPath := getDatabasePath(*dbPath)
		database, err := db.OpenDatabase(finalDBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: submissions requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		subCommand := commandArgs[0]
		subArgs := commandArgs[1:]

		switch subCommand {
		case "list":
			if err := cli.ListSubmissionsCommand(database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "show":
			if err := cli.ShowSubmissionCommand(database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "archive":
			client := docuseal.NewClient(docuseal.ConfigFromEnv())
			if err := cli.ArchiveSubmissionCommand(client, database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown submissions command: %s\n\n", subCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func mustLoadDefinitions(dir string) *definitions.Loader {
	loader := definitions.NewLoader(dir)
	if err := loader.LoadAll(); err != nil {
		log.Fatalf("Failed to load document definitions: %v", err)
	}
	return loader
}

func getDefinitionsDir(defsDir string) string {
	if defsDir != "" {
		return defsDir
	}
	if env := os.Getenv("DOCPIPE_DEFINITIONS_DIR"); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "docpipe", "definitions")
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("DOCPIPE_DB_PATH"); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "docpipe", "docpipe.db")
}

func printUsage() {
	fmt.Printf(`docpipe v%s - Document generation and field mapping for real-estate transactions

USAGE:
  docpipe [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version                  Show version and exit
  --definitions-dir <path>   Document definitions directory (default: ~/.local/share/docpipe/definitions)
  --db-path <path>           Database path (default: ~/.local/share/docpipe/docpipe.db)

ENVIRONMENT:
  DOCPIPE_DEFINITIONS_DIR    Same as --definitions-dir
  DOCPIPE_DB_PATH            Same as --db-path
  DOCUSEAL_API_KEY           Signing API key (mock mode when unset)
  DOCUSEAL_BASE_URL          Signing API base URL (default: https://api.docuseal.com)

DOCS COMMANDS:
  docpipe docs list          List loaded document definitions
    --type <type>              Filter by document type (form-driven, pdf-preview)

  docpipe docs show <slug>   Show roles and fields for one definition

  docpipe docs validate      Validate all definitions in the definitions directory
    --file <path>              Validate a single YAML file instead

GENERATE:
  docpipe generate           Resolve a document's fields and build signer payloads
    --doc <slug>               Document definition slug (required)
    --context <file>           JSON context file (required)
    --send                     Create the signing submission (default: preview only)
    --message <text>           Email message for signers (with --send)

AUTOMAP:
  docpipe automap            Suggest form-to-template field mappings
    --template <id>            Signing template ID (required)
    --source <file>            JSON array of source form fields (required)
    --slug <slug>              Emit a draft definition with this slug
    --name <name>              Display name for the draft definition
    --out <file>               Write the draft YAML to a file

SUBMISSIONS:
  docpipe submissions list   List recorded submissions
    --doc <slug>               Filter by document slug
    --limit <n>                Max results (default: 50)

  docpipe submissions show <id>  Show one submission record

  docpipe submissions archive <id>  Void a sent envelope and mark it archived

EXAMPLES:
  # Preview a listing agreement without sending
  docpipe generate --doc listing-agreement --context deal.json

  # Send it for signatures
  docpipe generate --doc listing-agreement --context deal.json --send

  # Bootstrap a definition for a new template
  docpipe automap --template tpl_123 --source form_fields.json --slug purchase-offer --out purchase-offer.yaml

`, version)
}
