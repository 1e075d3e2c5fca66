/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-u                 Server base URL (required)
	-page              Page path to load (default: /)
	-session           Session cookie value
	-timeout           HTTP timeout (default: 10s)
	-t                 Journal database type: sqlite or postgres (default: sqlite)
	-d                 Journal database URL (journal disabled when empty)
	-o                 Write the patched page to a file
	-v                 Debug logging
	-label-correct     Label for a correct answer
	-label-not-correct Label for an answer not marked correct
	-env               Environment file (default: .env)

Remaining arguments are actions:

	question:42:like  answer:7:dislike  correct:5

# Environment Variables

The env file is loaded first with godotenv; variables already set in the
environment are not overwritten. Flags fall back to:

	ASKME_BASE_URL → -u
	ASKME_PAGE     → -page
	ASKME_SESSION  → -session
	ASKME_TIMEOUT  → -timeout
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - no base URL is given
  - the timeout does not parse or is not positive
  - an action is malformed
  - -env names a file that cannot be read
*/
package cliparse
