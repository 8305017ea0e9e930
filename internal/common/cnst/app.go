package cnst

const (
	// AppName is the name of the application
	AppName = "tcoserver"
	// CommandName is the name of the server binary
	CommandName = "tcoserver"
)

const (
	// TCOServerYaml is the default configuration file name
	TCOServerYaml = "tcoserver.yaml"
)
