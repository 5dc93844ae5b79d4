// Package testutil holds test helpers shared across packages: step
// numbering, fixed match ids and team entry builders.
package testutil
