package types

// EngineConfig represents the complete engine configuration
type EngineConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Labor   LaborConfig   `mapstructure:"labor" validate:"omitempty"`
	Archive ArchiveConfig `mapstructure:"archive" validate:"required"`
}

// StatsConfig holds classification and counting settings
type StatsConfig struct {
	// NotWorkedThresholdSeconds suppresses below-threshold work when
	// classifying; cumulative phase worktime at or under it counts as not
	// yet meaningfully worked.
	NotWorkedThresholdSeconds int `mapstructure:"notWorkedThresholdSeconds" validate:"min=0"`
	// GroupBy lists metadata field names, in output column order.
	GroupBy []string `mapstructure:"groupBy" validate:"omitempty,dive,min=1"`
}

// LaborConfig holds the worktime reporting window. Either the date pair or
// the month pair is set, never both.
type LaborConfig struct {
	StartDate  string `mapstructure:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `mapstructure:"endDate" validate:"omitempty,datetime=2006-01-02"`
	StartMonth string `mapstructure:"startMonth" validate:"omitempty,datetime=2006-01"`
	EndMonth   string `mapstructure:"endMonth" validate:"omitempty,datetime=2006-01"`
	// TargetUsers narrows worktime rows to the listed user ids; empty
	// means all members resolved by the collaborator.
	TargetUsers []string `mapstructure:"targetUsers" validate:"omitempty,dive,min=1"`
}

// ArchiveConfig holds snapshot archive storage settings
type ArchiveConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json sqlite"`
}
