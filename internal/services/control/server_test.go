package control

import (
	"context"
	"io"
	"log"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/command"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
)

func newTestClient(t *testing.T) (*ControlClient, *simulation.Engine) {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)
	eng, err := simulation.NewEngine(simulation.DefaultConfig(), simulation.DefaultPlots(),
		simulation.WithSource(simulation.Fixed(0.5)), simulation.WithLogger(quiet))
	require.NoError(t, err)
	t.Cleanup(eng.Close)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterControlServiceServer(srv, NewServer(eng, command.NewHandler(eng, nil, quiet)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewControlClient(conn), eng
}

func mapEntry(t *testing.T, s *structpb.Struct, i int) map[string]*structpb.Value {
	t.Helper()
	list := s.GetFields()["map"].GetListValue().GetValues()
	require.Greater(t, len(list), i)
	return list[i].GetStructValue().GetFields()
}

func TestSnapshotReturnsDashboard(t *testing.T) {
	c, _ := newTestClient(t)

	out, err := c.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, out.GetFields()["controls"].GetListValue().GetValues(), 5)
	assert.Equal(t, "plot1", out.GetFields()["chart"].GetStructValue().GetFields()["plot_id"].GetStringValue())
	assert.Equal(t, "Tomatoes", mapEntry(t, out, 0)["crop"].GetStringValue())
	_, hasApplied := out.GetFields()["applied"]
	assert.False(t, hasApplied)
}

func TestSelectChangesChartPlot(t *testing.T) {
	c, eng := newTestClient(t)

	out, err := c.Select(context.Background(), "plot3")
	require.NoError(t, err)
	assert.True(t, out.GetFields()["applied"].GetBoolValue())
	assert.Equal(t, "plot3", out.GetFields()["chart"].GetStructValue().GetFields()["plot_id"].GetStringValue())
	assert.Equal(t, "plot3", eng.Selected())

	_, err = c.Select(context.Background(), "nope")
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "plot3", eng.Selected())

	_, err = c.Select(context.Background(), "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestMutationsGoThroughEngine(t *testing.T) {
	c, eng := newTestClient(t)
	before, ok := eng.Plot("plot1")
	require.True(t, ok)

	out, err := c.ApplyRain(context.Background())
	require.NoError(t, err)
	assert.True(t, out.GetFields()["applied"].GetBoolValue())
	after, _ := eng.Plot("plot1")
	assert.Greater(t, after.Moisture, before.Moisture)
	assert.InDelta(t, after.Moisture, mapEntry(t, out, 0)["moisture"].GetNumberValue(), 1e-9)

	out, err = c.ApplyIrrigation(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, out.GetFields()["applied"].GetBoolValue())

	out, err = c.ApplyIrrigation(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, out.GetFields()["applied"].GetBoolValue())

	out, err = c.Reset(context.Background())
	require.NoError(t, err)
	assert.True(t, out.GetFields()["applied"].GetBoolValue())
}
