package quasarctlcmd

import (
	"context"
	"os"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/olekukonko/tablewriter"
	"go.quasar.dev/core/connection"
	mbp "go.quasar.dev/core/mainboilerplate"
	pb "go.quasar.dev/core/protocol"
	"go.quasar.dev/core/task"
)

type cmdLookup struct {
	OutputConfig
	Topics        []string `long:"topic" short:"t" required:"true" description:"Topic to look up. May be repeated"`
	Authoritative bool     `long:"authoritative" description:"Mark lookups as authoritative, as when following a redirect"`
}

func init() {
	CommandRegistry.AddCommand("", "lookup", "Look up the brokers serving topics", `
Look up the broker which serves each --topic.

Topics are looked up concurrently. A broker which doesn't own the topic may
answer with a redirect to another broker, which is reported and not followed.

Results can be output in a variety of --format options:
table: Prints as a table.
yaml:  Prints a mapping of each topic to its lookup result.
json:  Prints lookup responses encoded as JSON, one per line in --topic order.
`, &cmdLookup{})
}

func (cmd *cmdLookup) Execute([]string) error {
	var ctx, conn = startup()
	defer conn.Close()

	var results, err = lookupTopics(ctx, conn, cmd.Topics, cmd.Authoritative)
	mbp.Must(err, "failed to look up topics")

	switch cmd.Format {
	case "table":
		var table = tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Topic", "Broker", "Redirect", "Authoritative", "Proxy"})

		for i, r := range results {
			table.Append([]string{
				cmd.Topics[i],
				r.BrokerServiceURL,
				strconv.FormatBool(r.Redirect),
				strconv.FormatBool(r.Authoritative),
				strconv.FormatBool(r.ProxyThroughServiceURL),
			})
		}
		table.Render()
	case "yaml":
		var out = make(map[string]*connection.LookupResult, len(results))
		for i, r := range results {
			out[cmd.Topics[i]] = r
		}
		writeYAML(out)
	case "json":
		for _, r := range results {
			writeJSON(lookupResponse(r))
		}
	}
	return nil
}

// lookupTopics looks up each of |topics| concurrently, returning results
// in corresponding order.
func lookupTopics(ctx context.Context, conn *connection.Conn, topics []string, authoritative bool) ([]*connection.LookupResult, error) {
	var out = make([]*connection.LookupResult, len(topics))
	var tasks = task.NewGroup(ctx)

	for i, topic := range topics {
		tasks.Queue("lookup "+topic, func() (err error) {
			out[i], err = conn.LookupTopic(tasks.Context(), topic, authoritative)
			return
		})
	}
	tasks.GoRun()

	if err := tasks.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func lookupResponse(r *connection.LookupResult) *pb.CommandLookupTopicResponse {
	var resp = &pb.CommandLookupTopicResponse{
		RequestId:              proto.Uint64(r.RequestID),
		BrokerServiceUrl:       proto.String(r.BrokerServiceURL),
		Response:               pb.LookupType_Connect.Enum(),
		Authoritative:          proto.Bool(r.Authoritative),
		ProxyThroughServiceUrl: proto.Bool(r.ProxyThroughServiceURL),
	}
	if r.BrokerServiceURLTLS != "" {
		resp.BrokerServiceUrlTls = proto.String(r.BrokerServiceURLTLS)
	}
	if r.Redirect {
		resp.Response = pb.LookupType_Redirect.Enum()
	}
	return resp
}
