// Package media maps journal media references to files of an export bundle.
//
// # Matching
//
// Each export has two independent pools, photos/ and videos/. A pool is
// indexed once per run (see NewIndex) and references are resolved by an
// ordered chain of strategies, the first match wins:
//
//	IdentifierLookup  uppercased identifier → file whose stem is that 32-char hex id
//	FilenameScan      first file, in enumeration order, whose name contains the identifier
//	DigestScan        first file whose MD5 equals the reference's md5 (lazy, cached)
//
// A reference that no strategy matches is reported as missing; it never
// aborts an import.
//
// # Digest cache
//
// Content digests are computed on demand only, at most once per file per run,
// and kept in a DigestCache shared by both pools.
package media
