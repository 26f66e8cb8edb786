package gitrepo

// DepRepo is the unit flowing through the sync pipeline.
type DepRepo interface {
	GetName() string
	IsCloned() bool
	NeedsSync() (bool, error)
	Sync() error
	TargetDir() string
}
