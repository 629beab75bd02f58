package errata

// downstreamErratum is implemented by every downstream advisory variant.
type downstreamErratum interface {
	matchID() string
}

func (e RockyErratum) matchID() string { return e.Name }

func (e AlmaErratum) matchID() string { return e.UpdateinfoID }

// Find looks up the downstream equivalent of a canonical upstream advisory
// identifier within one distribution's advisory list. If several errata
// share the same identifier, the first one in list order wins. Absence is a
// normal result, not an error.
func Find[E downstreamErratum](errata []E, canonical string, distro Distribution) (E, bool, error) {
	var zero E
	target, err := distro.AdvisoryID(canonical)
	if err != nil {
		return zero, false, err
	}
	for _, e := range errata {
		if e.matchID() == target {
			return e, true, nil
		}
	}
	return zero, false, nil
}
