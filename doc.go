// Package memedir is the Composition Root for the memedir application.
//
// It connects the core service (Domain Layer) with the gateway adapters that
// talk to the meme collection (REST API or in-process memory).
//
// Features:
//
//   - **Hexagonal Architecture**: the service depends on core.Gateway, not on HTTP.
//   - **Image URL resolution**: Imgur page links become direct i.imgur.com sources,
//     anything invalid becomes a placeholder.
//   - **Form rules**: names of 3 to 100 characters, required image URL, likes
//     regenerated on every edit.
//   - **Two surfaces**: a server-rendered web UI and a CLI (cmd/memedir).
//
// Usage:
//
//	svc, err := memedir.New("",
//		memedir.WithTimeout(5*time.Second),
//		memedir.WithLogger(logger),
//	)
//
//	memes, err := svc.ListRecords(ctx)
package memedir
