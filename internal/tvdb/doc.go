// Package tvdb provides the minimal TVDB API client used for episode
// maintenance.
//
// It authenticates requests and exposes series detail lookups with an optional
// full episode listing. Responses are strongly typed so the episode provider
// can reconcile them against the local catalog. Options allow tests to supply
// custom HTTP clients or stub behaviour without modifying production code.
package tvdb
