package errata

// UpstreamErratum is a security advisory as returned by the RHEL customer
// portal search API.
type UpstreamErratum struct {
	ID          string    `json:"id"`
	PublishedAt Timestamp `json:"portal_publication_date"`
	Synopsis    string    `json:"portal_synopsis"`
}

// RockyErratum is a security advisory as returned by the Rocky Linux errata
// API.
type RockyErratum struct {
	Name        string    `json:"name"`
	PublishedAt Timestamp `json:"publishedAt"`
	Synopsis    string    `json:"synopsis"`
}

// AlmaErratum is a security advisory as found in the AlmaLinux errata
// database.
type AlmaErratum struct {
	UpdateinfoID string   `json:"updateinfo_id"`
	IssuedDate   AlmaDate `json:"issued_date"`
	Title        string   `json:"title"`
}

// AlmaDate is the MongoDB extended-JSON date wrapper the AlmaLinux database
// nests its timestamps in.
type AlmaDate struct {
	Date Timestamp `json:"$date"`
}
