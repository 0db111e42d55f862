package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/themekit/internal/db"
	"github.com/opencode-ai/themekit/internal/models"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of events to show")
	historyCmd.Flags().StringVar(&historyStyle, "style", "", "only events of this style")
	historyCmd.Flags().StringVar(&historyType, "type", "", "only events of this type (e.g. stylesheet.changed)")
}

var (
	historyLimit int
	historyStyle string
	historyType  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent style changes and generation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		if !cfg.History.Enabled {
			return &PreflightError{
				Message:  "history is disabled",
				Hint:     "set history.enabled: true in themekit.yaml",
				NextStep: "themekit generate",
			}
		}

		ctx := cmd.Context()
		database, err := db.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer database.Close()
		if _, err := database.MigrateUp(ctx); err != nil {
			return err
		}

		list, err := loadHistory(ctx, db.NewEventRepository(database), historyStyle, historyType, historyLimit)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(os.Stdout, "No history yet.")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for _, event := range list {
			rows = append(rows, []string{
				event.Timestamp.Local().Format(time.DateTime),
				formatEventType(event.Type),
				event.EntityID,
				string(event.Payload),
			})
		}
		return writeTable(os.Stdout, []string{"TIME", "EVENT", "STYLE", "DETAILS"}, rows)
	},
}

// loadHistory returns up to limit events, oldest first. Without filters
// these are the newest events.
func loadHistory(ctx context.Context, repo *db.EventRepository, styleName, eventType string, limit int) ([]*models.Event, error) {
	if styleName == "" && eventType == "" {
		recent, err := repo.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
			recent[i], recent[j] = recent[j], recent[i]
		}
		return recent, nil
	}

	if eventType == "" {
		return repo.ListByEntity(ctx, models.EntityTypeStyle, styleName, limit)
	}

	q := db.EventQuery{Limit: limit}
	if styleName != "" {
		entityType := models.EntityTypeStyle
		q.EntityType = &entityType
		q.EntityID = &styleName
	}
	if eventType != "" {
		typ := models.EventType(eventType)
		q.Type = &typ
	}
	page, err := repo.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return page.Events, nil
}
