package cfg

type Cfg struct {
	// Storage configuration
	DBPath     string
	ContentDir string

	// Feed configuration
	PageSize           int
	TrendingWindowDays int
	ExcerptLength      int

	// Application configuration
	Port              string
	BaseUrl           string
	SessionTTL        int
	SchedulerInterval int
	WorkerCount       int

	// Application metadata
	SiteTitle       string
	SiteDescription string
	Timezone        string
	Debug           bool
	Version         string
}
