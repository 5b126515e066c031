package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/interviewd/internal/render"
	"github.com/abhisek/interviewd/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests and usage",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		session, _ := cmd.Flags().GetString("session")

		return withStore(cmd, func(s *store.Store) error {
			events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
				Limit:     limit,
				From:      since(cmd),
				SessionID: session,
				Purpose:   purpose,
			})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			return output(cmd, events, func() string { return render.LLMEvents(events) })
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd, func(s *store.Store) error {
			e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			return output(cmd, e, func() string { return render.LLMEvent(e) })
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			ctx := cmd.Context()
			byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			byModel, err := s.EventRepo().LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			stats := map[string][]store.LLMUsageStat{"byPurpose": byPurpose, "byModel": byModel}
			return output(cmd, stats, func() string { return render.LLMUsage(byPurpose, byModel) })
		})
	},
}

func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s)
}

func since(cmd *cobra.Command) time.Time {
	d, _ := cmd.Flags().GetDuration("since")
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(-d)
}

func init() {
	llmCmd.PersistentFlags().Bool("json", false, "Print JSON instead of formatted output")

	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 24h)")
	llmListCmd.Flags().StringP("session", "s", "", "Only show events for this interview session")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (question-gen, answer-eval, final-report)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
