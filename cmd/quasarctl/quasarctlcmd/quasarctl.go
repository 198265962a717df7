// Package quasarctlcmd implements the sub-commands of quasarctl.
package quasarctlcmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogo/protobuf/jsonpb"
	"github.com/gogo/protobuf/proto"
	"github.com/jessevdk/go-flags"
	"github.com/spf13/afero"
	"go.quasar.dev/core/connection"
	mbp "go.quasar.dev/core/mainboilerplate"
	"gopkg.in/yaml.v2"
)

const iniFilename = "quasarctl.ini"

var (
	baseCfg = new(struct {
		Broker      mbp.BrokerConfig      `group:"Broker" namespace:"broker" env-namespace:"BROKER"`
		Log         mbp.LogConfig         `group:"Logging" namespace:"log" env-namespace:"LOG"`
		Diagnostics mbp.DiagnosticsConfig `group:"Debug" namespace:"debug" env-namespace:"DEBUG"`
	})

	// CommandRegistry of quasarctl sub-commands, keyed on parent path.
	CommandRegistry = mbp.NewCommandRegistry()

	// files from which --input is read and to which --output is written.
	files afero.Fs = afero.NewOsFs()
)

// OutputConfig is common configuration of commands which print responses.
type OutputConfig struct {
	Format string `long:"format" short:"o" choice:"table" choice:"yaml" choice:"json" default:"table" description:"Output format"`
}

// startup initializes logging and diagnostics, and dials the broker. The
// returned Context is cancelled on SIGINT or SIGTERM.
func startup() (context.Context, *connection.Conn) {
	mbp.InitLog(baseCfg.Log)
	mbp.InitDiagnosticsAndRecover(baseCfg.Diagnostics)

	var ctx, _ = signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	return ctx, baseCfg.Broker.MustDial(ctx)
}

// Execute quasarctl with os.Args.
func Execute() {
	defer mbp.InitDiagnosticsAndRecover(mbp.DiagnosticsConfig{})()

	var parser = flags.NewParser(baseCfg, flags.Default)

	mbp.AddPrintConfigCmd(parser, iniFilename)
	parser.LongDescription = `quasarctl is a tool for interacting with brokers.

	See --help pages of each sub-command for documentation and usage examples.
	Optionally configure quasarctl with a '` + iniFilename + `' file in the current working directory,
	or with '~/.config/quasar/` + iniFilename + `'. Use the 'print-config' sub-command to inspect
	the tool's current configuration.
	`
	mbp.Must(CommandRegistry.AddCommands("", parser.Command), "could not add sub-command")
	mbp.MustParseConfig(parser, iniFilename)
}

func writeYAML(v interface{}) {
	var b, err = yaml.Marshal(v)
	mbp.Must(err, "failed to encode to yaml")
	_, _ = os.Stdout.Write(b)
}

// writeJSON writes each message as a line of JSON. Only set fields are
// written.
func writeJSON(msgs ...proto.Message) {
	var m = jsonpb.Marshaler{OrigName: true}

	for _, msg := range msgs {
		mbp.Must(m.Marshal(os.Stdout, msg), "failed to encode to json")
		_, _ = os.Stdout.WriteString("\n")
	}
}
