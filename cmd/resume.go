package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviewd/internal/resume"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage candidate resume profiles",
}

var resumeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a resume profile in the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := resume.Profile{}
		p.ID, _ = cmd.Flags().GetString("id")
		p.CandidateID, _ = cmd.Flags().GetString("candidate")
		p.Name, _ = cmd.Flags().GetString("name")
		skills, _ := cmd.Flags().GetStringSlice("skills")
		p.Skills = skills
		p.Experience, _ = cmd.Flags().GetString("experience")
		p.Education, _ = cmd.Flags().GetString("education")
		p.Projects, _ = cmd.Flags().GetString("projects")
		p.Summary, _ = cmd.Flags().GetString("summary")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		created, err := resume.NewStoreDirectory(st.ResumeRepo()).Create(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	},
}

var resumeShowCmd = &cobra.Command{
	Use:   "show <resume-id>",
	Short: "Show a resume profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		var dir resume.Directory = resume.NewStoreDirectory(st.ResumeRepo())
		if appConfig.Resume.Source == "http" {
			dir = resume.NewHTTPDirectory(appConfig.Resume.BaseURL, appConfig.Resume.Timeout)
		}
		p, err := dir.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", p.ID)
		fmt.Fprintf(out, "Candidate:   %s\n", p.CandidateID)
		if p.Name != "" {
			fmt.Fprintf(out, "Name:        %s\n", p.Name)
		}
		fmt.Fprintf(out, "Skills:      %s\n", strings.Join(p.Skills, ", "))
		fmt.Fprintf(out, "Experience:  %s\n", p.Experience)
		fmt.Fprintf(out, "Education:   %s\n", p.Education)
		fmt.Fprintf(out, "Projects:    %s\n", p.Projects)
		if p.Summary != "" {
			fmt.Fprintf(out, "Summary:     %s\n", p.Summary)
		}
		return nil
	},
}

func init() {
	resumeAddCmd.Flags().String("id", "", "Resume ID (default: generated)")
	resumeAddCmd.Flags().String("candidate", "", "Candidate ID")
	resumeAddCmd.Flags().String("name", "", "Candidate name")
	resumeAddCmd.Flags().StringSlice("skills", nil, "Comma-separated skills")
	resumeAddCmd.Flags().String("experience", "", "Experience summary")
	resumeAddCmd.Flags().String("education", "", "Education summary")
	resumeAddCmd.Flags().String("projects", "", "Notable projects")
	resumeAddCmd.Flags().String("summary", "", "Free-form summary")

	resumeCmd.AddCommand(resumeAddCmd)
	resumeCmd.AddCommand(resumeShowCmd)
}
