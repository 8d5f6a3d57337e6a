// Command verify runs one verified search and prints the result.
//
//	verify -mode deep "how do vaccines work"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	"github.com/lk2023060901/ai-study-backend/internal/data"
	"github.com/lk2023060901/ai-study-backend/internal/markdown"
	notesbiz "github.com/lk2023060901/ai-study-backend/internal/notes/biz"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	searchbiz "github.com/lk2023060901/ai-study-backend/internal/search/biz"
	"github.com/lk2023060901/ai-study-backend/internal/search/types"
)

var (
	configFile = flag.String("config", "", "config file path")
	modeFlag   = flag.String("mode", "quick", "search mode: quick or deep")
	provider   = flag.String("provider", "", "provider name or alias (default: configured provider)")
	format     = flag.String("format", "json", "output format: json or text")
	save       = flag.Bool("save", false, "save the result as a note")
	verbose    = flag.Bool("v", false, "log to stderr")
)

func main() {
	flag.Parse()

	topic := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if topic == "" {
		fmt.Fprintln(os.Stderr, "usage: verify [-mode quick|deep] [-format json|text] [-save] <topic>")
		os.Exit(2)
	}

	mode, err := types.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.NewNop()
	if *verbose {
		if log, err = logger.CLI(&config.Log); err != nil {
			fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
			os.Exit(1)
		}
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, log, mode, topic); err != nil {
		log.Error("verify failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config *conf.Config, log *logger.Logger, mode types.SearchMode, topic string) error {
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		return err
	}
	defer cleanup()

	p := d.DefaultProvider()
	if *provider != "" {
		if p, err = d.Registry.Get(*provider); err != nil {
			return err
		}
	}

	result, err := searchbiz.NewSearchUseCase(p, "", log).Search(ctx, mode, topic)
	if err != nil {
		return err
	}

	if *save {
		notes, err := notesbiz.NewNoteUseCase(ctx, d.NoteStore, notesbiz.WithLogger(log))
		if err != nil {
			return err
		}
		note, err := notes.CreateFromResult(ctx, topic, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved note %s\n", note.ID)
	}

	if *format == "text" {
		fmt.Printf("%s\n\n%s\n\nReliability: %d%%\n%s\n",
			result.Summary, markdown.PlainText(result.DetailedExplanation),
			result.ReliabilityScore, result.ConsensusNote)
		for _, src := range result.Sources {
			fmt.Printf("- %s (%s) %s\n", src.Title, src.Source, src.URL)
		}
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
