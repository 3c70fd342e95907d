// Package update rewrites documents in place.
//
// An [Updater] reads a file, renders it with a [Transformer], and writes the
// result back only if rendering succeeded and changed the content. When
// backups are enabled the original content is copied first to
//
//	<backup dir>/<timestamp>/<absolute path of the file>
//
// so a failed or unwanted update can be undone by hand.
package update
