package control

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/command"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/view"
)

// SnapshotSource provides the state rendered in every response.
type SnapshotSource interface {
	Snapshot() simulation.Snapshot
}

// Server implementa ControlService sopra il motore di simulazione.
type Server struct {
	state    SnapshotSource
	commands *command.Handler
}

var _ ControlServiceServer = (*Server)(nil)

func NewServer(state SnapshotSource, commands *command.Handler) *Server {
	return &Server{state: state, commands: commands}
}

func (s *Server) Snapshot(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.render(nil)
}

// Select fails with NotFound for an unknown plot, leaving the selection as is.
func (s *Server) Select(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	applied, err := s.commands.Apply(model.Command{Action: model.EventSelect, PlotID: in.GetValue()})
	if errors.Is(err, command.ErrMissingPlot) {
		return nil, status.Error(codes.InvalidArgument, "plot id required")
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if !applied {
		return nil, status.Errorf(codes.NotFound, "unknown plot %q", in.GetValue())
	}
	return s.render(&applied)
}

func (s *Server) ApplyRain(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.apply(model.Command{Action: model.EventRain})
}

// ApplyIrrigation is a no-op (applied=false) for an unknown plot.
func (s *Server) ApplyIrrigation(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.apply(model.Command{Action: model.EventIrrigation, PlotID: in.GetValue()})
}

func (s *Server) Reset(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.apply(model.Command{Action: model.EventReset})
}

func (s *Server) apply(cmd model.Command) (*structpb.Struct, error) {
	applied, err := s.commands.Apply(cmd)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s.render(&applied)
}

// render converts the dashboard payload into a Struct, adding "applied"
// for mutating calls.
func (s *Server) render(applied *bool) (*structpb.Struct, error) {
	out, err := DashboardStruct(view.Build(s.state.Snapshot()))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if applied != nil {
		out.Fields["applied"] = structpb.NewBoolValue(*applied)
	}
	return out, nil
}

// DashboardStruct returns the JSON form of d as a protobuf Struct.
func DashboardStruct(d view.Dashboard) (*structpb.Struct, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}
