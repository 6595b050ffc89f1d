package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledcat/activity"
	"github.com/matt-g-everett/ledcat/api"
	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/stream"
	"github.com/matt-g-everett/ledcat/tui"
	"github.com/matt-g-everett/ledcat/workq"
	"github.com/spf13/cobra"
)

var configPath string

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Queue    *workq.Queue
	Bus      *event.Bus
	Monitor  *activity.Monitor
	Streamer *stream.Streamer
	Input    *stream.InputListener
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	a.Queue = workq.NewQueue()
	a.Bus = event.NewBus(a.Queue.Submit)
	a.Monitor = activity.NewMonitor(a.Bus, a.Queue, config.InitialActivity(), config.IdleTimeout(), config.SleepTimeout())
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if a.Input == nil {
		return
	}
	if err := a.Input.Subscribe(); err != nil {
		log.Printf("[Input] %v", err)
	}
}

func (a *app) connect() error {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	return nil
}

// runQueue drains the work queue until ctx is done. The widget and monitor
// are then stopped on the queue itself, before it exits, so no tick or idle
// check is left armed.
func (a *app) runQueue(ctx context.Context, widget *stream.CatWidget) error {
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()

	done := make(chan error, 1)
	go func() {
		done <- a.Queue.Run(queueCtx)
	}()

	<-ctx.Done()
	widget.Close()
	a.Monitor.Stop()
	a.Queue.Submit(stopQueue)

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (stream.Config, error) {
	config, err := stream.LoadConfig(configPath)
	if err != nil && errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		log.Printf("No config at %s, using defaults", configPath)
		return stream.DefaultConfig(), nil
	}
	return config, err
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runStream(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Printf("Config: broker %s, stream %s, input %s, panel %dx%d",
		config.Mqtt.URL, config.Mqtt.Topics.Stream, config.Mqtt.Topics.Input,
		config.Panel.Width, config.Panel.Height)

	ctx, cancel := signalContext()
	defer cancel()

	a := newApp(config)
	if err := a.connect(); err != nil {
		return err
	}
	defer a.Client.Disconnect(250)

	a.Streamer, err = stream.NewStreamer(config, a.Client)
	if err != nil {
		return err
	}
	a.Input = stream.NewInputListener(config, a.Client, a.Monitor, a.Bus)
	if err := a.Input.Subscribe(); err != nil {
		return err
	}

	widget, err := stream.NewCatWidget(a.Streamer, a.Queue, a.Bus, config.CatOptions())
	if err != nil {
		return err
	}
	a.Monitor.Start()

	server := api.NewApi(config, widget, a.Monitor)
	go func() {
		if err := server.Serve(ctx); err != nil {
			log.Printf("[Api] %v", err)
			cancel()
		}
	}()

	return a.runQueue(ctx, widget)
}

func runPreview(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fore, back, err := config.Colours()
	if err != nil {
		return err
	}

	// The terminal belongs to the preview.
	log.SetOutput(io.Discard)

	ctx, cancel := signalContext()
	defer cancel()

	a := newApp(config)
	opts := config.CatOptions()
	width, height := opts.Size()
	display := tui.NewDisplay(width, height, fore, back)

	widget, err := stream.NewCatWidget(display, a.Queue, a.Bus, opts)
	if err != nil {
		return err
	}
	a.Monitor.Start()

	p := tea.NewProgram(tui.NewModel(widget, a.Monitor, display.View()), tea.WithContext(ctx))
	display.Attach(p.Send)

	queueCtx, stopQueue := context.WithCancel(ctx)
	defer stopQueue()
	queueDone := make(chan error, 1)
	go func() {
		queueDone <- a.runQueue(queueCtx, widget)
	}()

	_, err = p.Run()
	stopQueue()
	if queueErr := <-queueDone; queueErr != nil {
		return queueErr
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a := newApp(config)
	if err := a.connect(); err != nil {
		return err
	}
	defer a.Client.Disconnect(250)

	return stream.NewCalibrate(config, a.Client).Run(ctx)
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	rootCmd := &cobra.Command{
		Use:          "ledcat",
		Short:        "animated cat for an LED panel",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "YAML config file.")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "stream the cat to the panel over MQTT",
			Args:  cobra.NoArgs,
			RunE:  runStream,
		},
		&cobra.Command{
			Use:   "preview",
			Short: "preview the cat in the terminal",
			Args:  cobra.NoArgs,
			RunE:  runPreview,
		},
		&cobra.Command{
			Use:   "calibrate",
			Short: "stream panel calibration patterns",
			Args:  cobra.NoArgs,
			RunE:  runCalibrate,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
