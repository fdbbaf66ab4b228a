package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/metrics"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/command"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/control"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/exporter"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/gateway/app"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
	"github.com/LeonardoBeccarini/agri_dashboard/pkg/dedup"
	"github.com/LeonardoBeccarini/agri_dashboard/pkg/rabbitmq"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Default()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg Config, logger *log.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// la connessione MQTT vive fino al flush finale dell'exporter
	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	guardCfg := exporter.DefaultGuardConfig()
	guardCfg.Fails = cfg.CBFailures
	guardCfg.OpenFor = cfg.CBOpenFor

	var (
		sinks      []exporter.Sink
		checks     []app.Check
		mqttClient mqtt.Client
	)

	if cfg.MQTTHost != "" {
		client, err := rabbitmq.NewRabbitMQConn(connCtx, &rabbitmq.RabbitMQConfig{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			User:     cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			ClientID: cfg.MQTTClientID,
		})
		if err != nil {
			return err
		}
		mqttClient = client
		pub := rabbitmq.NewPublisher(client, cfg.MQTTEventTopic)
		defer pub.Close()
		sinks = append(sinks, exporter.Guard(exporter.NewMQTTSink(pub, cfg.MQTTSampleTopic, cfg.MQTTEventTopic), guardCfg))
		checks = append(checks, app.Check{Name: "mqtt", OK: client.IsConnectionOpen})
	} else {
		logger.Printf("gateway: MQTT_HOST empty, MQTT export and commands disabled")
	}

	if cfg.InfluxURL != "" {
		sink, client, err := exporter.NewInfluxSink(exporter.InfluxConfig{
			URL:         cfg.InfluxURL,
			Token:       cfg.InfluxToken,
			Org:         cfg.InfluxOrg,
			Bucket:      cfg.InfluxBucket,
			Measurement: cfg.InfluxMeasurement,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		guarded := exporter.Guard(sink, guardCfg)
		sinks = append(sinks, guarded)
		checks = append(checks, app.Check{Name: "influx", OK: func() bool {
			return guarded.State() != gobreaker.StateOpen
		}})
	} else {
		logger.Printf("gateway: INFLUX_URL empty, Influx export disabled")
	}

	opts := []simulation.Option{
		simulation.WithSource(simulation.NewSeededSource(cfg.Seed)),
		simulation.WithLogger(logger),
		simulation.WithNotifier(m),
	}

	exportDone := make(chan struct{})
	exportCtx, exportCancel := context.WithCancel(context.Background())
	defer exportCancel()
	if len(sinks) > 0 {
		dispatcher := exporter.NewDispatcher(exporter.DispatcherConfig{
			QueueSize: cfg.ExportQueue,
			Metrics:   m,
			Logger:    logger,
		}, sinks...)
		opts = append(opts, simulation.WithNotifier(dispatcher))
		go func() {
			dispatcher.Run(exportCtx)
			close(exportDone)
		}()
	} else {
		close(exportDone)
	}

	simCfg := simulation.DefaultConfig()
	simCfg.TickInterval = cfg.TickInterval
	engine, err := simulation.NewEngine(simCfg, simulation.DefaultPlots(), opts...)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	m.ObservePlots(engine.Plots())

	commands := command.NewHandler(engine, dedup.New(10*time.Minute, 20000), logger)
	if mqttClient != nil {
		consumer := rabbitmq.NewConsumer(mqttClient, cfg.MQTTCommandTopic, commands.HandleMessage)
		go consumer.ConsumeMessage(ctx)
	}

	// gRPC
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	grpcServer := grpc.NewServer()
	control.RegisterControlServiceServer(grpcServer, control.NewServer(engine, commands))

	// HTTP
	gw := app.NewGateway(app.Config{
		HTTPTimeout: cfg.HTTPTimeout,
		Gatherer:    reg,
		Checks:      checks,
		Logger:      logger,
	}, engine, commands)
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           gw.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Printf("gateway: gRPC listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	go func() {
		logger.Printf("gateway: HTTP listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	engine.Start(ctx)
	logger.Printf("gateway: simulation running, tick=%s seed=%d", cfg.TickInterval, cfg.Seed)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Printf("gateway: shutting down")
	case runErr = <-errCh:
	}

	// ordine: niente tick, niente richieste, poi flush dell'export
	engine.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("gateway: http shutdown: %v", err)
	}
	grpcServer.GracefulStop()

	exportCancel()
	<-exportDone
	return runErr
}
