// Package quality defines the ordered quality ladder shared by the catalog
// and the release decision logic.
//
// Quality values form a strict total order; comparisons between them decide
// whether a candidate release upgrades an existing episode file. Profile
// cutoffs are expressed in the same scale, so the ladder is the single
// contract between stored files, parsed reports, and upgrade policy.
package quality
