// Package episodes holds the decision logic of the catalog: evaluating
// whether a candidate release is worth grabbing, and reconciling fetched
// TVDB episode metadata into the local store.
//
// The provider exposes two operations with real behaviour, IsNeeded and
// RefreshEpisodeInfo, plus thin accessors that forward to the store. All
// persistence and network access goes through the injected collaborators so
// tests can exercise the decision paths with stub sources.
package episodes
