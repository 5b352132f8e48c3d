//go:build !litcollect_debug

package collector

import "github.com/groundwire/implicant/term"

// debugCheck is a no-op in normal builds; see collector_debugcheck.go
// for the litcollect_debug variant.
func (c *Collector) debugCheck(lits []term.Ref) error { return nil }
