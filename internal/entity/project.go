package entity

// Project is a user's named piece of writing. Declared sprint words can be
// credited to a project by its shortname.
type Project struct {
	SnowFlakeBase

	UserID    string `gorm:"index:idx_projects_user"`
	Shortname string `gorm:"index:idx_projects_user"`
	Name      string

	// Words is the running total credited to this project.
	Words int

	// Completed marks the project finished. Finished projects no longer
	// accept sprint words.
	Completed bool
}
