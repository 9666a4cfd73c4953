package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "ir_climate/docs"
	"ir_climate/internal/config"
	"ir_climate/internal/gpio"
	"ir_climate/internal/handlers"
	"ir_climate/internal/ir"
	"ir_climate/internal/logger"
	"ir_climate/internal/models"
	"ir_climate/internal/mqtt"
	"ir_climate/internal/remote"
	"ir_climate/internal/repository"
	"ir_climate/internal/repository/db"
	"ir_climate/internal/sensor"
	"ir_climate/internal/server"
	"ir_climate/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       ir-climate
// @version                     1.0
// @description                 Network-controlled infrared remote for an air conditioner.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	var closers []io.Closer
	defer func() { closeAll(closers, log) }()

	tx, err := buildTransmitter(cfg.IR, log.Component("ir"))
	if err != nil {
		log.Fatalw("failed to open ir emitter", "err", err, "port", cfg.IR.Port)
	}
	closers = append(closers, tx)

	led := buildBusyLED(cfg.GPIO, log)
	closers = append(closers, led)

	reader := buildSensor(cfg.Sensor, log.Component("sensor"))
	if c, ok := reader.(io.Closer); ok {
		closers = append(closers, c)
	}

	publisher := buildPublisher(cfg.MQTT, log.Component("mqtt"))
	closers = append(closers, publisher)

	controller := remote.NewController(models.DefaultApplianceState(), remote.ControllerDeps{
		Transmitter: tx,
		Busy:        led,
		Timeout:     cfg.Remote.IndicatorTimeout,
		Log:         log.Component("controller"),
	})

	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Controller: controller,
		Translator: remote.NewTranslator(remote.TempRange{Min: cfg.Remote.TempMin, Max: cfg.Remote.TempMax}),
		Sensor:     reader,
		Publisher:  publisher,
		Auth:       authConfig(cfg.Auth),
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log.Component("http"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Ticker.Run(ctx, cfg.Remote.Tick)

	announce(publisher, cfg, log)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	go func() {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(cancel, srv, log)
}

// buildTransmitter opens the serial emitter, or logs frames when no port is set.
func buildTransmitter(cfg config.IRConfig, log *logger.Logger) (interface {
	remote.Transmitter
	io.Closer
}, error) {
	if cfg.Port == "" {
		log.Warnw("ir.port not set; frames are logged, not sent")
		return ir.NewDryRunTransmitter(log), nil
	}
	return ir.OpenSerial(cfg.Port, cfg.Baud, cfg.Timeout, log)
}

// buildBusyLED requests the LED line. The remote keeps working without it.
func buildBusyLED(cfg config.GPIOConfig, log *logger.Logger) gpio.Output {
	if cfg.LEDPin < 0 {
		return gpio.Noop{}
	}
	led, err := gpio.NewLED(cfg.Chip, cfg.LEDPin, cfg.ActiveLow)
	if err != nil {
		log.Errorw("busy led unavailable", "err", err, "chip", cfg.Chip, "pin", cfg.LEDPin)
		return gpio.Noop{}
	}
	return led
}

func buildSensor(cfg config.SensorConfig, log *logger.Logger) sensor.Reader {
	var s *sensor.ModbusSensor
	switch cfg.Mode {
	case "rtu":
		s = sensor.NewRTU(sensor.RTUOptions{
			Port:    cfg.Port,
			Baud:    cfg.Baud,
			SlaveID: cfg.SlaveID,
			Timeout: cfg.Timeout,
		}, log)
	case "tcp":
		s = sensor.NewTCP(cfg.Address, cfg.SlaveID, cfg.Timeout, log)
	default:
		return sensor.Disabled{}
	}
	if err := s.Connect(); err != nil {
		log.Warnw("sensor connect failed; will retry on read", "err", err)
	}
	return s
}

// buildPublisher connects to the broker. MQTT is optional, so failures disable it.
func buildPublisher(cfg config.MQTTConfig, log *logger.Logger) mqtt.Publisher {
	if cfg.Broker == "" {
		return mqtt.Disabled{}
	}
	p, err := mqtt.NewRealPublisher(cfg.Broker, cfg.ClientID, cfg.Prefix, log)
	if err != nil {
		log.Errorw("mqtt disabled", "err", err, "broker", cfg.Broker)
		return mqtt.Disabled{}
	}
	return p
}

func announce(p mqtt.Publisher, cfg *config.Config, log *logger.Logger) {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		port = 0
	}
	a := mqtt.LocalAnnouncement(cfg.MQTT.Name, port)
	if err := p.Announce(a); err != nil {
		log.Warnw("mqtt_announce_failed", "err", err)
		return
	}
	log.Infow("announced", "name", a.Name, "host", a.Host, "port", a.Port)
}

func closeAll(closers []io.Closer, log *logger.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			log.Errorw("close failed", "err", err)
		}
	}
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops background work and the server.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("shutting down", "signal", sig.String())
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func authConfig(c config.AuthConfig) service.AuthConfig {
	return service.AuthConfig{SigningKey: c.SigningKey, TokenTTL: c.TokenTTL, OpenSignUp: c.OpenSignUp}
}
