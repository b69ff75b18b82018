package commands

// Bucket names every handler draws from. The table itself is configured at
// startup; taking from a name missing there is a defect, so the names live
// in one place.
const (
	BucketDefault = "default"
	BucketCards   = "cards"
)
