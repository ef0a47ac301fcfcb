package sanitize

import (
	"fmt"
	"os"

	"github.com/pkg/xattr"
)

// xattrCapable is resolved once at process start. On platforms without
// extended-attribute support the copy step degrades to a no-op instead
// of failing per file.
var xattrCapable = xattr.XATTR_SUPPORTED

// copyFileAttrs carries permissions and timestamps from src to dst, plus
// extended attributes where the platform supports them. The xattr pass
// is best-effort: individual attributes that cannot be read or written
// (SELinux labels, say) are skipped, not fatal.
func copyFileAttrs(src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		return fmt.Errorf("chtimes: %w", err)
	}
	if xattrCapable {
		copyXattrs(src, dst)
	}
	return nil
}

func copyXattrs(src, dst string) {
	names, err := xattr.List(src)
	if err != nil {
		return
	}
	for _, name := range names {
		data, err := xattr.Get(src, name)
		if err != nil {
			continue
		}
		_ = xattr.Set(dst, name, data)
	}
}
