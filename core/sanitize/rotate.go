package sanitize

import (
	"fmt"
	"os"
)

// Rotate replaces original with the fully-written sanitized file:
// original is renamed to original.old, then sanitized is renamed to
// original. Both are same-filesystem renames, never copies.
//
// Known gap: if the process dies between the two renames, the directory
// holds an .old backup and no live original. That window is accepted:
// recovery is a manual rename of the backup, and the pre-existing backup
// check in Sanitize keeps a re-run from overwriting the evidence.
func Rotate(original, sanitized string) error {
	backup := BackupPath(original)
	if err := os.Rename(original, backup); err != nil {
		return fmt.Errorf("rotate: back up %s: %w", original, err)
	}
	if err := os.Rename(sanitized, original); err != nil {
		return fmt.Errorf("rotate: install %s: %w", original, err)
	}
	return nil
}
