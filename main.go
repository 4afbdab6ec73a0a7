package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/hashicorp/logutils"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/capcom6/dir-notify/internal/config"
	"github.com/capcom6/dir-notify/internal/controller"
	"github.com/capcom6/dir-notify/internal/notify"
	"github.com/capcom6/dir-notify/internal/watcher"
)

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:      "dir-notify",
		Usage:     "watch a directory and raise a desktop notification on every change",
		Version:   config.Version(),
		ArgsUsage: "<directory>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "glob pattern for entry names to ignore (repeatable)",
				Sources: cli.EnvVars("DIR_NOTIFY_EXCLUDE"),
			},
			&cli.BoolFlag{
				Name:    "poll",
				Usage:   "force the polling watch strategy",
				Sources: cli.EnvVars("DIR_NOTIFY_POLL"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "debug mode",
				Sources: cli.EnvVars("DIR_NOTIFY_DEBUG"),
			},
		},
		Action: run,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Config{
		WatchPath:    cmd.Args().First(),
		ExcludePaths: cmd.StringSlice("exclude"),
		Debug:        cmd.Bool("debug"),
		Poll:         cmd.Bool("poll"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setUpLogging(cfg)
	log.Printf("[DEBUG] %s", config.BuildInfo())

	chain := notify.NewChain(notify.Channels(runtime.GOOS))

	ctrl := controller.New(chain, uiCallbacks(), watcher.Options{
		Excludes: cfg.ExcludePaths,
		Poll:     cfg.Poll,
	})
	defer ctrl.Shutdown()

	if err := ctrl.SetTarget(cfg.WatchPath); err != nil {
		return err
	}

	log.Println("[INFO] Watching...")
	<-ctx.Done()

	log.Println("[INFO] Bye!")

	return nil
}

// uiCallbacks stands in for the graphical shell: the directory listing
// refresh and status line become log output.
func uiCallbacks() controller.Callbacks {
	return controller.Callbacks{
		OnChange: func(event watcher.Event) {
			log.Printf("[INFO] %s: %s", event.Type, event.Name)
		},
		OnRefresh: func() {
			log.Println("[DEBUG] refresh listing")
		},
		OnStatus: func(message string) {
			// already logged by the controller; the graphical shell
			// would render it in a status bar
		},
	}
}

func setUpLogging(cfg config.Config) {
	logLevel := "INFO"
	if cfg.Debug {
		logLevel = "DEBUG"
	}

	filter := logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"},
		MinLevel: logutils.LogLevel(logLevel),
		Writer:   os.Stdout,
	}

	log.SetOutput(&filter)
}
