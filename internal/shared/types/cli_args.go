package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Input      string
	Sheet      string
	ReportName string
	ReportType []string
	Dir        string
	AWSProfile string
	AWSRegion  string
	SQLDriver  string
	SQLDSN     string
	SQLQuery   string
	NoBanner   bool
}

// ServeArgs represents the arguments of the serve command.
type ServeArgs struct {
	ConfigFile string
	Addr       string
}
