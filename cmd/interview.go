package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/render"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interview from the terminal",
}

var interviewStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interview and print the first question",
	RunE: func(cmd *cobra.Command, args []string) error {
		candidate, _ := cmd.Flags().GetString("candidate")
		resumeID, _ := cmd.Flags().GetString("resume")
		role, _ := cmd.Flags().GetString("role")
		description, _ := cmd.Flags().GetString("description")
		if file, _ := cmd.Flags().GetString("description-file"); file != "" {
			b, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read job description: %w", err)
			}
			description = string(b)
		}

		return withController(cmd, func(d *deps) error {
			res, err := d.controller.Start(cmd.Context(), interview.StartInput{
				CandidateID:    candidate,
				ResumeID:       resumeID,
				JobDescription: description,
				JobRole:        role,
			})
			if err != nil {
				return err
			}
			return output(cmd, res, func() string {
				return render.Hint.Render("Interview "+res.SessionID) + "\n\n" + render.Question(res.Question)
			})
		})
	},
}

var interviewAnswerCmd = &cobra.Command{
	Use:   "answer <interview-id> <question-number>",
	Short: "Submit an answer (from --text or stdin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid question number %q: %w", args[1], err)
		}
		text, _ := cmd.Flags().GetString("text")
		if text == "" {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			text = strings.TrimSpace(string(b))
		}
		timeTaken, _ := cmd.Flags().GetInt("time")

		return withController(cmd, func(d *deps) error {
			res, err := d.controller.SubmitAnswer(cmd.Context(), interview.AnswerInput{
				SessionID:      args[0],
				QuestionNumber: n,
				Answer:         text,
				TimeTaken:      timeTaken,
			})
			if err != nil {
				return err
			}
			return output(cmd, res, func() string { return render.Answer(res) })
		})
	},
}

var interviewStatusCmd = &cobra.Command{
	Use:   "status <interview-id>",
	Short: "Show an interview's current state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(d *deps) error {
			v, err := d.controller.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output(cmd, v, func() string { return render.Status(v) })
		})
	},
}

var interviewReportCmd = &cobra.Command{
	Use:   "report <interview-id>",
	Short: "Show the final report of a finished interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(d *deps) error {
			r, err := d.controller.Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output(cmd, r, func() string { return render.Report(r) })
		})
	},
}

var interviewEventsCmd = &cobra.Command{
	Use:   "events <interview-id>",
	Short: "Show the lifecycle events recorded for an interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		events, err := st.EventRepo().QuerySessionEvents(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s  %-19s  %-15s  %3s  %-11s  %s\n", "Seq", "Timestamp", "Action", "Q", "Status", "Detail")
		fmt.Fprintln(out, strings.Repeat("\u2500", 80))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-19s  %-15s  %3d  %-11s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Action,
				e.QuestionNumber,
				e.Status,
				e.Detail,
			)
		}
		return nil
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List a candidate's interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		candidate, _ := cmd.Flags().GetString("candidate")
		limit, _ := cmd.Flags().GetInt("limit")
		return withController(cmd, func(d *deps) error {
			list, err := d.controller.List(cmd.Context(), candidate, limit)
			if err != nil {
				return err
			}
			return output(cmd, list, func() string { return render.Sessions(list) })
		})
	},
}

// withController opens the store, wires the controller and runs fn.
func withController(cmd *cobra.Command, fn func(d *deps) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	d, err := buildDeps(cmd.Context(), st)
	if err != nil {
		st.Close()
		return err
	}
	defer d.Close()
	return fn(d)
}

// output prints v as indented JSON with --json, or the rendered view.
func output(cmd *cobra.Command, v any, view func() string) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Fprintln(cmd.OutOrStdout(), view())
	return nil
}

func init() {
	interviewCmd.PersistentFlags().Bool("json", false, "Print JSON instead of formatted output")
	sessionsCmd.Flags().Bool("json", false, "Print JSON instead of formatted output")

	interviewStartCmd.Flags().String("candidate", "", "Candidate ID")
	interviewStartCmd.Flags().String("resume", "", "Resume ID")
	interviewStartCmd.Flags().String("role", "", "Job role")
	interviewStartCmd.Flags().String("description", "", "Job description")
	interviewStartCmd.Flags().String("description-file", "", "Read the job description from a file")

	interviewAnswerCmd.Flags().String("text", "", "Answer text (default: read stdin)")
	interviewAnswerCmd.Flags().Int("time", 0, "Seconds taken to answer")
	_ = interviewAnswerCmd.MarkFlagRequired("time")

	sessionsCmd.Flags().String("candidate", "", "Candidate ID")
	sessionsCmd.Flags().IntP("limit", "n", 20, "Number of interviews to show")

	interviewCmd.AddCommand(interviewStartCmd)
	interviewCmd.AddCommand(interviewAnswerCmd)
	interviewCmd.AddCommand(interviewStatusCmd)
	interviewCmd.AddCommand(interviewReportCmd)
	interviewCmd.AddCommand(interviewEventsCmd)
}
