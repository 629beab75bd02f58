package errata

import (
	"fmt"
	"log/slog"
)

const dateLayout = "2006-01-02"

// Entry is one row of the comparison dataset. Each per-distribution triple
// (name, date, drift) is either fully populated or fully null.
type Entry struct {
	RHELName   string  `json:"rhel_name"`
	RHELDate   *string `json:"rhel_date"`
	RockyName  *string `json:"rockylinux_name"`
	RockyDate  *string `json:"rockylinux_date"`
	RockyDrift *int    `json:"rockylinux_drift"`
	AlmaName   *string `json:"almalinux_name"`
	AlmaDate   *string `json:"almalinux_date"`
	AlmaDrift  *int    `json:"almalinux_drift"`
}

// Dataset is the ordered comparison dataset, one entry per upstream
// advisory, in upstream input order.
type Dataset []Entry

// Diagnostic is a per-advisory observation made during a correlation pass.
type Diagnostic struct {
	Level   slog.Level
	Erratum string
	Message string
}

// Correlate builds the publication drift dataset for one release. It is a
// pure batch transform: given identical inputs, including list order, the
// result is identical, and every observation is returned as a Diagnostic
// instead of being logged. An upstream advisory whose date cannot be
// determined is still emitted, with downstream matching skipped.
func Correlate(upstream []UpstreamErratum, rocky []RockyErratum, alma []AlmaErratum) (Dataset, []Diagnostic) {
	dataset := make(Dataset, 0, len(upstream))
	var diags []Diagnostic

	for _, u := range upstream {
		entry := Entry{RHELName: u.ID}

		upstreamDate, err := u.PublishedAt.Date()
		if err != nil {
			diags = append(diags, Diagnostic{
				Level:   slog.LevelWarn,
				Erratum: u.ID,
				Message: fmt.Sprintf("cannot determine publication date (%s): %s", u.Synopsis, err),
			})
			dataset = append(dataset, entry)
			continue
		}
		entry.RHELDate = ptr(upstreamDate.Format(dateLayout))

		if r, ok, err := Find(rocky, u.ID, DistributionRocky); err != nil {
			diags = append(diags, diagnostic(slog.LevelWarn, u, fmt.Sprintf("match Rocky Linux erratum: %s", err)))
		} else if !ok {
			diags = append(diags, diagnostic(slog.LevelInfo, u, "found no matching Rocky Linux erratum"))
		} else if rockyDate, err := r.PublishedAt.Date(); err != nil {
			diags = append(diags, diagnostic(slog.LevelWarn, u, fmt.Sprintf("cannot determine publication date of Rocky Linux erratum %s: %s", r.Name, err)))
		} else {
			entry.RockyName = ptr(r.Name)
			entry.RockyDate = ptr(rockyDate.Format(dateLayout))
			entry.RockyDrift = ptr(DriftDays(rockyDate, upstreamDate))
		}

		if a, ok, err := Find(alma, u.ID, DistributionAlma); err != nil {
			diags = append(diags, diagnostic(slog.LevelWarn, u, fmt.Sprintf("match AlmaLinux erratum: %s", err)))
		} else if !ok {
			diags = append(diags, diagnostic(slog.LevelInfo, u, "found no matching AlmaLinux erratum"))
		} else if almaDate, err := a.IssuedDate.Date.Date(); err != nil {
			diags = append(diags, diagnostic(slog.LevelWarn, u, fmt.Sprintf("cannot determine publication date of AlmaLinux erratum %s: %s", a.UpdateinfoID, err)))
		} else {
			entry.AlmaName = ptr(a.UpdateinfoID)
			entry.AlmaDate = ptr(almaDate.Format(dateLayout))
			entry.AlmaDrift = ptr(DriftDays(almaDate, upstreamDate))
		}

		dataset = append(dataset, entry)
	}

	return dataset, diags
}

func diagnostic(level slog.Level, u UpstreamErratum, message string) Diagnostic {
	return Diagnostic{
		Level:   level,
		Erratum: u.ID,
		Message: fmt.Sprintf("%s (%s)", message, u.Synopsis),
	}
}

func ptr[T any](v T) *T {
	return &v
}
