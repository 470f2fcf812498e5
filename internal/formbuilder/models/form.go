package models

// FormConfig is the administrator-facing definition of one application form:
// which processes run on submission and the defaults they apply.
type FormConfig struct {
	ID          string `mapstructure:"id" json:"id"`
	Name        string `mapstructure:"name" json:"name"`
	Description string `mapstructure:"description" json:"description,omitempty"`

	CreateStudent bool `mapstructure:"create_student" json:"create_student"`
	CreateFamily  bool `mapstructure:"create_family" json:"create_family"`
	CreateParents bool `mapstructure:"create_parents" json:"create_parents"`

	// DefaultStatus applies to new accounts without a future start date.
	DefaultStatus AccountStatus `mapstructure:"default_status" json:"default_status,omitempty"`

	// StudentDefaultEmail and StudentDefaultWebsite may contain the
	// [username] placeholder.
	StudentDefaultEmail   string `mapstructure:"student_default_email" json:"student_default_email,omitempty"`
	StudentDefaultWebsite string `mapstructure:"student_default_website" json:"student_default_website,omitempty"`
}

// Status returns the configured default status, falling back to Full.
func (c FormConfig) Status() AccountStatus {
	if c.DefaultStatus == "" {
		return StatusFull
	}
	return c.DefaultStatus
}
