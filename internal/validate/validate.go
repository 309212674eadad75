// Package validate holds the syntax checks for bucket and file names.
//
// Both checks are pure character-class matches. They gate input before any
// backend call is made; the backend's own naming rules are not duplicated
// here beyond these classes.
package validate

import "regexp"

var (
	bucketNameRe = regexp.MustCompile(`^[a-z0-9-]+$`)
	fileNameRe   = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// BucketName reports whether name is a syntactically valid bucket name:
// non-empty, lowercase letters, digits, and hyphens only.
func BucketName(name string) bool {
	return bucketNameRe.MatchString(name)
}

// FileName reports whether name is a syntactically valid object name:
// non-empty, letters, digits, dots, underscores, and hyphens only.
func FileName(name string) bool {
	return fileNameRe.MatchString(name)
}
