package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/afriquesports/factsheet/internal/builder"
	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/worker"
)

var batchOut string

// batchRequest is one entry in a batch file.
type batchRequest struct {
	Type     string   `yaml:"type"`
	Title    string   `yaml:"title"`
	Players  []string `yaml:"players"`
	Teams    []string `yaml:"teams"`
	Size     int      `yaml:"size"`
	Position []string `yaml:"position"`
	Language string   `yaml:"language"`
	Topic    string   `yaml:"topic"`
}

type batchFile struct {
	Requests []batchRequest `yaml:"requests"`
}

type batchTask struct {
	b     *builder.Builder
	req   batchRequest
	index int
	out   string
}

type batchOutcome struct {
	index int
	id    string
	path  string
	err   error
}

func (o batchOutcome) Err() error { return o.err }

func (t batchTask) Run(ctx context.Context) worker.Outcome {
	req := builder.Request{
		Title:          t.req.Title,
		PlayerNames:    t.req.Players,
		TeamNames:      t.req.Teams,
		RankingSize:    t.req.Size,
		PositionFilter: t.req.Position,
		Language:       t.req.Language,
		Topic:          t.req.Topic,
	}

	var sheet *model.FactSheet
	var err error
	if t.req.Type == string(model.PostRanking) {
		sheet, err = t.b.BuildRanking(ctx, req)
	} else {
		sheet, err = t.b.BuildNews(ctx, req)
	}
	if err != nil {
		return batchOutcome{index: t.index, err: fmt.Errorf("request %d (%s): %w", t.index+1, t.req.Title, err)}
	}

	data, err := sheet.ToJSON()
	if err != nil {
		return batchOutcome{index: t.index, err: err}
	}
	path := filepath.Join(t.out, sheet.Meta.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return batchOutcome{index: t.index, err: fmt.Errorf("write sheet: %w", err)}
	}
	return batchOutcome{index: t.index, id: sheet.Meta.ID, path: path}
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <requests.yaml>",
	Short: "Build FactSheets for a batch of content requests",
	Long: `Build FactSheets for every request listed in a YAML file. Requests
run concurrently on a bounded pool; each sheet lands in its own JSON
file under the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read batch file: %w", err)
		}
		var batch batchFile
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return fmt.Errorf("parse batch file: %w", err)
		}
		if len(batch.Requests) == 0 {
			return fmt.Errorf("batch file has no requests")
		}

		if err := os.MkdirAll(batchOut, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		log := newLogger()
		defer func() { _ = log.Sync() }()

		cfg := loadConfig()
		b, err := newBuilder(cfg, log)
		if err != nil {
			return err
		}

		ctx := contextWithSignals()
		pool := worker.NewPool(ctx, cfg.Concurrency.BatchWorkers)
		pool.Start()
		for i, req := range batch.Requests {
			pool.Submit(batchTask{b: b, req: req, index: i, out: batchOut})
		}

		failed := 0
		for _, outcome := range pool.Drain() {
			result, ok := outcome.(batchOutcome)
			if !ok {
				continue
			}
			if result.err != nil {
				failed++
				fmt.Fprintln(os.Stderr, result.err)
				continue
			}
			fmt.Fprintf(os.Stderr, "Built %s -> %s\n", result.id, result.path)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d requests failed", failed, len(batch.Requests))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "sheets", "output directory")
	rootCmd.AddCommand(batchCmd)
}
