package errata

import "time"

// DriftDays returns the signed number of whole days between a downstream
// advisory's publication date and its upstream counterpart's. A negative
// value means the downstream advisory was published first; it is preserved
// as-is since it signals an ordering anomaly worth surfacing.
func DriftDays(downstream, upstream time.Time) int {
	return int(downstream.Sub(upstream).Hours() / 24)
}
