package shell

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var directionArgs = []string{"up", "down", "left", "right"}

var commandMetadata = map[string]CommandMetadata{
	"new":      {},
	"show":     {},
	"moves":    {},
	"move":     {Args: directionArgs},
	"hint":     {Options: []string{"-deadline"}},
	"auto":     {Args: []string{"all"}},
	"autoplay": {Options: []string{"-threads", "-output"}, Args: []string{"stop"}},
	"analyze":  {},
	"help":     {Args: []string{"new", "hint", "auto", "autoplay", "analyze"}},
	"exit":     {},
	"up":       {},
	"down":     {},
	"left":     {},
	"right":    {},
}

var commandNames = func() []string {
	names := lo.Keys(commandMetadata)
	sort.Strings(names)
	return names
}()

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		// unterminated quote and the like
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		metadata := commandMetadata[fields[0]]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		lastComplete := fields[len(fields)-1]
		if !endsWithSpace {
			lastComplete = fields[len(fields)-2]
		}
		switch {
		case strings.HasPrefix(lastComplete, "-"):
			// the option's value; nothing to suggest.
		case strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0:
			completions = metadata.Options
		default:
			completions = metadata.Args
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
