//go:build !linux

package arena

// releasePages is a no-op where no portable page-release hint exists.
func releasePages(b []byte) {}
