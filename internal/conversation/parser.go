// Package conversation turns typed lines into commands and drives a search
// session with them. It serves both the Bubble Tea prompt and the plain
// line-oriented front end.
package conversation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/logger"
)

// CommandParser recognizes ":" commands; every other line is a query.
type CommandParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
	dim     domain.Dimension
}

// NewCommandParser creates the parser.
func NewCommandParser(log *logger.Logger) *CommandParser {
	p := &CommandParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^:(?:i|ingr[ée]dients?)\s+(.+)$`), domain.CommandToggle, domain.DimensionIngredient},
		{regexp.MustCompile(`(?i)^:(?:a|app(?:liances?|areils?))\s+(.+)$`), domain.CommandToggle, domain.DimensionAppliance},
		{regexp.MustCompile(`(?i)^:(?:u|utensils?|ustensils?|ustensiles?)\s+(.+)$`), domain.CommandToggle, domain.DimensionUtensil},
		{regexp.MustCompile(`(?i)^:(?:c|clear|effacer)$`), domain.CommandClearSearch, 0},
		{regexp.MustCompile(`(?i)^:(?:r|reset)$`), domain.CommandResetFilters, 0},
		{regexp.MustCompile(`(?i)^:(?:e|export)\s+(.+)$`), domain.CommandExport, 0},
		{regexp.MustCompile(`(?i)^:(?:s|status)$`), domain.CommandStatus, 0},
		{regexp.MustCompile(`(?i)^:(?:h|help|\?)$`), domain.CommandHelp, 0},
		{regexp.MustCompile(`(?i)^:(?:q|quit|exit)$`), domain.CommandQuit, 0},
	}
	return p
}

var optionsRe = regexp.MustCompile(`(?i)^:(?:o|options)\s+(\S+)(?:\s+(.*))?$`)

// Parse converts a line into a command. Lines not starting with ":" are
// queries carried verbatim. An options command naming an unknown dimension
// returns an error wrapping domain.ErrUnknownDimension.
func (p *CommandParser) Parse(input string) (domain.Command, error) {
	line := strings.TrimRight(input, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return domain.Command{Type: domain.CommandUnknown}, nil
	}

	if !strings.HasPrefix(trimmed, ":") {
		return domain.Command{Type: domain.CommandQuery, Payload: line}, nil
	}

	p.log.Debug("parsing command: %q", trimmed)

	if m := optionsRe.FindStringSubmatch(trimmed); m != nil {
		d, err := domain.ParseDimension(m[1])
		if err != nil {
			return domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, fmt.Errorf("parsing %q: %w", trimmed, err)
		}
		return domain.Command{Type: domain.CommandOptions, Dimension: d, Payload: strings.TrimSpace(m[2])}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		cmd := domain.Command{Type: rule.command, Dimension: rule.dim}
		if len(m) > 1 {
			cmd.Payload = strings.TrimSpace(m[1])
		}
		p.log.Debug("matched command: %s", rule.command)
		return cmd, nil
	}

	p.log.Debug("no match, returning unknown command")
	return domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}
