package quasarctlcmd

import (
	"fmt"
	"os"

	"github.com/gogo/protobuf/proto"
	"github.com/olekukonko/tablewriter"
	"go.quasar.dev/core/connection"
	mbp "go.quasar.dev/core/mainboilerplate"
	pb "go.quasar.dev/core/protocol"
)

type cmdPartitions struct {
	OutputConfig
	Topic string `long:"topic" short:"t" required:"true" description:"Topic of partitions to list"`
}

type cmdTopics struct {
	OutputConfig
	Namespace string `long:"namespace" short:"n" required:"true" description:"Namespace of topics to list, as 'tenant/namespace'"`
	Mode      string `long:"mode" choice:"persistent" choice:"non-persistent" choice:"all" default:"persistent" description:"Domain of topics to list"`
}

func init() {
	CommandRegistry.AddCommand("", "partitions", "List the partitions of a topic", `
List the partitions of a --topic.

A partitioned topic is composed of partition topics named
"<topic>-partition-<N>", each of which may be produced to and consumed
directly. A topic which isn't partitioned has zero partitions.
`, &cmdPartitions{})

	CommandRegistry.AddCommand("", "topics", "List the topics of a namespace", `
List the topics of a --namespace.

Use --mode to select persistent topics (the default), non-persistent topics,
or both.

Examples:

# List all topics of the "public/default" namespace, as YAML:
quasarctl topics --namespace public/default --mode all --format yaml
`, &cmdTopics{})
}

func (cmd *cmdPartitions) Execute([]string) error {
	var ctx, conn = startup()
	defer conn.Close()

	var resp, err = conn.PartitionedMetadata(ctx, cmd.Topic)
	mbp.Must(err, "failed to fetch topic metadata", "topic", cmd.Topic)

	switch cmd.Format {
	case "table":
		var table = tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Partition"})

		for _, name := range partitionNames(cmd.Topic, resp) {
			table.Append([]string{name})
		}
		table.Render()
	case "yaml":
		writeYAML(struct {
			connection.PartitionsResult `yaml:",inline"`
			Names                       []string `yaml:"names,omitempty"`
		}{*resp, partitionNames(cmd.Topic, resp)})
	case "json":
		writeJSON(&pb.CommandPartitionedTopicMetadataResponse{
			RequestId:  proto.Uint64(resp.RequestID),
			Partitions: proto.Uint32(resp.Partitions),
			Response:   pb.PartitionedLookupType_Success.Enum(),
		})
	}
	return nil
}

func (cmd *cmdTopics) Execute([]string) error {
	var ctx, conn = startup()
	defer conn.Close()

	var resp, err = conn.GetTopicsOfNamespace(ctx, cmd.Namespace, topicsMode(cmd.Mode))
	mbp.Must(err, "failed to list topics", "namespace", cmd.Namespace)

	switch cmd.Format {
	case "table":
		var table = tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Topic"})

		for _, topic := range resp.Topics {
			table.Append([]string{topic})
		}
		table.Render()
	case "yaml":
		writeYAML(resp)
	case "json":
		writeJSON(&pb.CommandGetTopicsOfNamespaceResponse{
			RequestId: proto.Uint64(resp.RequestID),
			Topics:    resp.Topics,
		})
	}
	return nil
}

// partitionNames returns the partition topics of |topic|, or nil if it
// isn't partitioned.
func partitionNames(topic string, resp *connection.PartitionsResult) []string {
	var out []string
	for p := uint32(0); p != resp.Partitions; p++ {
		out = append(out, fmt.Sprintf("%s-partition-%d", topic, p))
	}
	return out
}

func topicsMode(mode string) pb.TopicsMode {
	switch mode {
	case "non-persistent":
		return pb.TopicsMode_NON_PERSISTENT
	case "all":
		return pb.TopicsMode_ALL
	default:
		return pb.TopicsMode_PERSISTENT
	}
}
