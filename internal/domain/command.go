package domain

// CommandType classifies a line typed in the line-oriented front end.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuery               // free text, fed to the search box
	CommandToggle              // toggle a facet value
	CommandOptions             // list the offerable values of a dimension
	CommandClearSearch         // empty the search box
	CommandResetFilters        // drop every facet selection
	CommandExport              // write the visible recipes to a file
	CommandStatus
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandQuery:
		return "query"
	case CommandToggle:
		return "toggle"
	case CommandOptions:
		return "options"
	case CommandClearSearch:
		return "clear_search"
	case CommandResetFilters:
		return "reset_filters"
	case CommandExport:
		return "export"
	case CommandStatus:
		return "status"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a parsed user action.
type Command struct {
	Type      CommandType
	Dimension Dimension
	Payload   string // query text, facet value, option filter or file path
}
