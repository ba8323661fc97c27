// Package model defines the core data structures used throughout
// the release fetcher.
//
// # Reference
//
// Reference is the normalized form of a repository URL given by the user:
//
//	ref := model.Reference{Owner: "acme", Repo: "tool", Tag: "v2.0"}
//	fmt.Println(ref.Slug()) // "acme/tool"
//
// # Release and Asset
//
// Release is a point-in-time snapshot of a published release as returned by
// the hosting API. Each Asset carries the declared size used to verify a
// finished download:
//
//	for _, asset := range release.Assets {
//	    fmt.Println(asset.Name, asset.Size)
//	}
//
// # Task, Progress and Outcome
//
// Task describes one in-flight transfer. Progress is the observation passed
// to observers after every chunk, and Outcome is the terminal result:
//
//	outcome := engine.Download(ctx, asset, path, observer)
//	if outcome.Status == model.StatusSizeMismatch {
//	    fmt.Println(outcome.Size, "!=", asset.Size)
//	}
package model
