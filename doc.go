// Package kana is the composition root of the kana post archiver.
//
// It connects the post store (pkg/core) with the filesystem archive
// (pkg/adapters/fs) and the archived post implementation (pkg/post).
//
// A Store is an insertion-ordered collection of posts keyed by id. Whatever
// goes in is converted to a post first, so stores can be built from ids, id
// lists, infos or info files, and combined with set operations:
//
//   - Union, UnionInPlace and Merge add posts; the right-hand side wins.
//   - Difference, DifferenceInPlace and Subtract remove ids.
//   - Map broadcasts a post operation (fetch, write, load, verify) to every
//     post, sequentially or over a bounded worker pool.
//
// Usage:
//
//	store, err := kana.NewStore(ctx, []any{"1,2,3"},
//		kana.WithSourceArchive("./mirror"),
//		kana.WithArchive("./archive"),
//	)
//
//	// Fetch and persist everything
//	err = store.GetAll(ctx)
//	err = store.Write(ctx)
package kana
