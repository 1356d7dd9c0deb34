package domain

// CopyPlan is the ordered list of files a run will check and copy.
type CopyPlan struct {
	Samples []string
	Files   []ReadFile
	Prefix  string
	Paired  bool
}
