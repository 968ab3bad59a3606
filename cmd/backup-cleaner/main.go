// backup-cleaner prunes dated backups in a folder, keeping daily backups
// for a number of days, weekly backups for a number of weeks and the
// earliest backup of every month forever.
//
// Usage:
//
//	# One pass with the default policy (14 days, 8 weeks)
//	backup-cleaner /var/backups/db
//
//	# Show what would be deleted
//	backup-cleaner --dry-run --days 7 --weeks 4 /var/backups/db
//
//	# Keep running: prune nightly and whenever the folder changes
//	backup-cleaner watch --config /etc/backup-cleaner.yaml
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).execute(context.Background(), os.Args[1:]))
}
