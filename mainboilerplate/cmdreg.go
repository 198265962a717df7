package mainboilerplate

import (
	"strings"

	"github.com/jessevdk/go-flags"
)

// AddCommandFunc adds a sub-command to its parent Command.
type AddCommandFunc func(*flags.Command) error

// CommandRegistry collects AddCommandFuncs by the dotted path of their parent
// command, such that sub-commands may register themselves (eg, from init())
// before their parents have been built. The root command has path "".
type CommandRegistry map[string][]AddCommandFunc

// NewCommandRegistry returns an empty CommandRegistry.
func NewCommandRegistry() CommandRegistry { return make(CommandRegistry) }

// AddCommand registers a go-flags AddCommand of |command| under the command
// at |parentPath|, eg "topics" or "topics.list".
func (cr CommandRegistry) AddCommand(parentPath, command, shortDescription, longDescription string, data interface{}) {
	cr[parentPath] = append(cr[parentPath], func(parent *flags.Command) error {
		var _, err = parent.AddCommand(command, shortDescription, longDescription, data)
		return err
	})
}

// AddCommands adds the commands registered under |path| to |cmd|, and then
// recursively adds commands registered under each sub-command of |cmd|.
func (cr CommandRegistry) AddCommands(path string, cmd *flags.Command) error {
	for _, fn := range cr[path] {
		if err := fn(cmd); err != nil {
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		if err := cr.AddCommands(joinCommandPath(path, sub.Name), sub); err != nil {
			return err
		}
	}
	return nil
}

func joinCommandPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return strings.Join([]string{parent, name}, ".")
}
