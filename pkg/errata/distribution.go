package errata

import (
	"fmt"

	"github.com/pkg/errors"
)

// Distribution enumerates the errata databases the correlator understands.
// The advisory prefix and the field an erratum is matched on are properties
// of the distribution, not caller choices.
type Distribution int

const (
	DistributionRHEL Distribution = iota
	DistributionRocky
	DistributionAlma
)

func (d Distribution) String() string {
	switch d {
	case DistributionRHEL:
		return "rhel"
	case DistributionRocky:
		return "rockylinux"
	case DistributionAlma:
		return "almalinux"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}

// UnsupportedDistributionError is returned when a Distribution value outside
// the closed set is used. The set is known at compile time, so hitting this
// is a programmer error.
type UnsupportedDistributionError struct {
	Distribution Distribution
}

func (e *UnsupportedDistributionError) Error() string {
	return fmt.Sprintf("unsupported distribution %s", e.Distribution)
}

// AdvisoryID rewrites a canonical upstream advisory identifier, e.g.
// RHSA-2023:1234, into the naming convention of d. The upstream prefix is
// replaced, the YYYY:NNNN suffix is preserved unchanged.
func (d Distribution) AdvisoryID(canonical string) (string, error) {
	if len(canonical) < 5 {
		return "", errors.Errorf("advisory identifier %q too short", canonical)
	}
	switch d {
	case DistributionRHEL:
		return "RHSA-" + canonical[5:], nil
	case DistributionRocky:
		return "RLSA-" + canonical[5:], nil
	case DistributionAlma:
		return "ALSA-" + canonical[5:], nil
	default:
		return "", &UnsupportedDistributionError{Distribution: d}
	}
}
