package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/souvikmajumdar/code-puppy/internal/config"
	"github.com/souvikmajumdar/code-puppy/internal/edit"
	"github.com/souvikmajumdar/code-puppy/internal/hooks"
	"github.com/souvikmajumdar/code-puppy/internal/logging"
	"github.com/souvikmajumdar/code-puppy/internal/permission"
	"github.com/souvikmajumdar/code-puppy/internal/plugins"
	"github.com/souvikmajumdar/code-puppy/internal/ui"
	"github.com/souvikmajumdar/code-puppy/internal/workspace"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logFile := flag.String("log", "", "log file path (empty to disable)")
	yolo := flag.Bool("yolo", false, "skip all interactive confirmations")
	payload := flag.String("p", "", "exec mode: apply this JSON edit payload and exit")
	deletePath := flag.String("delete", "", "exec mode: delete this file and exit")
	quiet := flag.Bool("q", false, "suppress informational output")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *yolo {
		cfg.SetYoloMode(true)
	}

	logPath := *logFile
	if logPath == "" {
		logPath = cfg.Log.File
	}
	logger, err := logging.New(logPath, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Close()

	w := ui.NewWriter()
	w.SetQuiet(*quiet)

	lock, err := workspace.AcquireLock(cfg.Workspace.Root)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer lock.Release()

	bus := hooks.NewBus(logger)
	if err := plugins.RegisterBuiltins(bus, cfg, w); err != nil {
		log.Fatalf("Failed to register built-in plugins: %v", err)
	}

	router := edit.NewRouter(cfg, bus, permission.NewGate(bus), logger, w)

	ctx := context.Background()
	bus.Dispatch(hooks.PhaseStartup)
	defer bus.Dispatch(hooks.PhaseShutdown)

	switch {
	case *payload != "":
		req, err := edit.ParseRequest([]byte(*payload))
		if err != nil {
			log.Fatalf("Invalid edit payload: %v", err)
		}
		printOutcome(router.EditFile(ctx, req, ui.NewGroupID("edit_file", req.TargetPath())))
	case *deletePath != "":
		printOutcome(router.DeleteFile(ctx, *deletePath, ui.NewGroupID("delete_file", *deletePath)))
	default:
		runREPL(ctx, cfg, router, w)
	}
}

// runREPL reads one JSON edit payload per prompt and applies it.
func runREPL(ctx context.Context, cfg *config.Config, router *edit.Router, w *ui.Writer) {
	w.Dim("code-puppy %s - paste an edit payload, /delete <path>, /yolo, or /quit", version)

	var history []string
	for {
		model := ui.NewInputModel(" edit> ", history)
		final, err := tea.NewProgram(model).Run()
		if err != nil {
			w.Error("input error: %v", err)
			return
		}
		input, ok := final.(ui.InputModel)
		if !ok || input.Cancelled() {
			return
		}
		line := strings.TrimSpace(input.Value())
		if line == "" {
			continue
		}
		history = append(history, line)

		switch {
		case line == "/quit" || line == "/exit":
			return
		case line == "/yolo":
			cfg.SetYoloMode(!cfg.YoloMode())
			w.Info("yolo mode: %v", cfg.YoloMode())
			continue
		case strings.HasPrefix(line, "/delete "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/delete "))
			printOutcome(router.DeleteFile(ctx, path, ui.NewGroupID("delete_file", path)))
			continue
		}

		req, err := edit.ParseRequest([]byte(line))
		if err != nil {
			w.Error("%v", err)
			continue
		}
		printOutcome(router.EditFile(ctx, req, ui.NewGroupID("edit_file", req.TargetPath())))
	}
}

func printOutcome(outcome edit.Outcome) {
	b, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(b))
}
