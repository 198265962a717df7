package mainboilerplate

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.quasar.dev/core/brokertest"
	pb "go.quasar.dev/core/protocol"
)

func TestCommandRegistryBuildsNestedCommands(t *testing.T) {
	var cr = NewCommandRegistry()

	// Sub-commands may be registered ahead of their parents.
	cr.AddCommand("topics", "list", "List topics", "", new(struct{}))
	cr.AddCommand("topics.list", "partitions", "List partitions", "", new(struct{}))
	cr.AddCommand("", "topics", "Interact with topics", "", new(struct{}))
	cr.AddCommand("", "lookup", "Look up topic owners", "", new(struct{}))

	var parser = flags.NewParser(nil, flags.None)
	require.NoError(t, cr.AddCommands("", parser.Command))

	var topics = parser.Find("topics")
	require.NotNil(t, topics)
	require.NotNil(t, parser.Find("lookup"))

	var list = topics.Find("list")
	require.NotNil(t, list)
	assert.NotNil(t, list.Find("partitions"))
	assert.Nil(t, topics.Find("partitions"))

	// Errors of registered functions are returned.
	cr["topics.list.partitions"] = append(cr["topics.list.partitions"],
		func(*flags.Command) error { return io.ErrClosedPipe })
	assert.Equal(t, io.ErrClosedPipe, cr.AddCommands("topics.list", list))
}

func TestBrokerConfigDefaultsAndOptions(t *testing.T) {
	var cfg struct {
		Broker BrokerConfig `group:"Broker" namespace:"broker" env-namespace:"BROKER"`
	}
	var parser = flags.NewParser(&cfg, flags.None)
	var _, err = parser.ParseArgs([]string{"--broker.keep-alive=5s", "--broker.auth-method=token", "--broker.auth-data=secret"})
	require.NoError(t, err)

	assert.Equal(t, "pulsar://localhost:6650", cfg.Broker.Address)
	assert.Equal(t, 30*time.Second, cfg.Broker.Timeout)

	var unregistered string
	var opts = cfg.Broker.Options(func(broker string) { unregistered = broker })
	assert.Equal(t, "pulsar://localhost:6650", opts.Broker)
	assert.Equal(t, 5*time.Second, opts.KeepAliveInterval)
	assert.Equal(t, 32768, opts.ReadBufferSize)

	opts.Unregister(opts.Broker)
	assert.Equal(t, "pulsar://localhost:6650", unregistered)

	assert.Equal(t, &pb.CommandConnect{
		ClientVersion:   proto.String("quasar-" + Version),
		ProtocolVersion: proto.Int32(pb.ProtocolVersion),
		AuthMethodName:  proto.String("token"),
		AuthData:        []byte("secret"),
	}, cfg.Broker.ConnectCommand())
	assert.NoError(t, cfg.Broker.ConnectCommand().Validate())
}

func TestBrokerConfigMustDial(t *testing.T) {
	var bk = brokertest.NewBroker()
	bk.Listen(t)
	bk.CreateTopic("persistent://public/default/orders", 4)

	var cfg = BrokerConfig{Address: bk.URL, Timeout: 5 * time.Second}
	var conn = cfg.MustDial(context.Background())

	var resp, err = conn.PartitionedMetadata(context.Background(), "persistent://public/default/orders")
	require.NoError(t, err)
	assert.Equal(t, uint32(4), resp.Partitions)

	conn.Close()
	bk.Tasks.Cancel()
	assert.NoError(t, bk.Tasks.Wait())

	// Dial failures panic.
	cfg.Address = "http://localhost"
	assert.Panics(t, func() { cfg.MustDial(context.Background()) })
}

func TestDiagnosticsHandler(t *testing.T) {
	// Registers collectors, without serving.
	var recoverFn = InitDiagnosticsAndRecover(DiagnosticsConfig{})
	assert.NotNil(t, recoverFn)
	_ = InitDiagnosticsAndRecover(DiagnosticsConfig{}) // Idempotent.

	var srv = httptest.NewServer(DiagnosticsHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/debug/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Get(srv.URL + "/debug/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "quasar_connections_open")
}

func TestMustPanicsOnlyOnError(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil, "not reached") })
	assert.Panics(t, func() { Must(io.ErrUnexpectedEOF, "failed", "field", 1) })
}
