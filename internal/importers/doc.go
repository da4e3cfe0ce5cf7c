// Package importers runs a Day One import from metadata files to Apple Notes.
//
// # Architecture
//
// The import follows a simple flow:
//
//	Export JSON → EntryReader → entities.Entry → Builder → entities.ResolvedNote → Publisher → Apple Notes
//
// The Builder resolves each entry's photo and video references, prefixes the
// creation date and renders the text. The Importer drives the loop one entry at
// a time: a failing or panicking entry is counted and skipped, unresolved media
// are collected for the whole run, and a cancelled context stops the run
// between entries with the rest counted as skipped.
//
// # Example Usage
//
//	builder := importers.NewBuilder(resolver, renderer)
//	importer := importers.NewImporter(dayone.NewParser(logger), builder, publisher, importers.Options{}, logger)
//
//	stats, err := importer.Run(ctx, files)
//	importers.Summary(os.Stdout, stats, verbose)
package importers
