// Package bundle models the files of an app-bundle module independently of
// the archive that stores them.
//
// An [Entry] pairs a module-relative [Path] with a compression hint and a
// [ContentSupplier] that opens the file's bytes on demand. Entries are
// immutable and built through a [Builder]:
//
//	entry, err := bundle.NewBuilder().
//	    SetPath(bundle.MustPath("dex/classes.dex")).
//	    SetContentSupplier(bundle.FileSupplier("/tmp/classes.dex")).
//	    Build()
//
// A modified copy is derived with ToBuilder:
//
//	stored, err := entry.ToBuilder().SetShouldCompress(false).Build()
//
// # Content
//
// A ContentSupplier may be invoked any number of times, possibly
// concurrently; each call yields a fresh stream that the caller must close.
// [Entry.Equal] relies on this: two entries are equal when their paths match
// and their content streams are byte-identical. Read failures are returned
// as [*ContentError] rather than reported as a mismatch.
//
// # Archives
//
// [ReadZip] and [OpenZip] import the members of an existing zip archive as
// entries whose suppliers reopen the member on every call. Deflate, store,
// and zstd members are supported.
package bundle
