// Package render formats interview state for the terminal.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewd/internal/interview"
)

// CardWidth is the outer width of question and verdict cards.
const CardWidth = 72

// Question renders the question the candidate should answer next.
func Question(q interview.PublicQuestion) string {
	header := fmt.Sprintf("Question %d  %s  %s  %s",
		q.QuestionNumber,
		badge(string(q.Difficulty), difficultyColor(q.Difficulty)),
		badge(string(q.Category), Secondary),
		Hint.Render(fmt.Sprintf("%ds", q.TimeAllowed)))

	body := Body.Width(CardWidth - 6).Render(q.Question)
	return Card.Width(CardWidth).Render(Title.Render(header) + "\n\n" + body)
}

// Answer renders the outcome of one submitted answer.
func Answer(res *interview.AnswerResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Score:"), scoreText(res.Score.Overall))
	if res.Feedback != "" {
		b.WriteString(Hint.Width(CardWidth).Render(res.Feedback))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(Progress("Progress", float64(res.Performance.QuestionsAnswered)/10, CardWidth))
	b.WriteString("\n")

	switch {
	case res.NextQuestion != nil:
		b.WriteString("\n")
		b.WriteString(Question(*res.NextQuestion))
	case res.Verdict != nil:
		b.WriteString("\n")
		b.WriteString(Verdict(res.Status, *res.Verdict))
	}
	return b.String()
}

// Status renders a compact status view.
func Status(v *interview.StatusView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Interview:"), v.SessionID)
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Role:     "), v.JobRole)
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Status:   "), statusText(v.Status))
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Level:    "), v.CurrentDifficulty)
	fmt.Fprintf(&b, "%s %d asked, %d answered, average %s\n",
		Label.Render("Progress: "),
		v.Performance.TotalQuestions, v.Performance.QuestionsAnswered,
		scoreText(v.Performance.AverageScore))

	if v.CurrentQuestion != nil {
		b.WriteString("\n")
		b.WriteString(Question(*v.CurrentQuestion))
	}
	if v.Verdict != nil {
		b.WriteString("\n")
		b.WriteString(Verdict(v.Status, *v.Verdict))
	}
	return b.String()
}

// Verdict renders the closing verdict card.
func Verdict(status interview.Status, v interview.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		Title.Render("Final score"),
		scoreText(float64(v.FinalScore)),
		badge(string(v.Readiness), readinessColor(v.Readiness)))
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Status:"), statusText(status))
	if v.TerminationReason != "" {
		fmt.Fprintf(&b, "%s %s\n", Label.Render("Reason:"), v.TerminationReason)
	}
	if v.HiringReadiness != "" {
		fmt.Fprintf(&b, "%s %s\n", Label.Render("Hiring:"), v.HiringReadiness)
		if v.HiringReadinessExplanation != "" {
			b.WriteString(Hint.Width(CardWidth - 6).Render(v.HiringReadinessExplanation))
			b.WriteString("\n")
		}
	}

	section(&b, "Strengths", v.Strengths)
	section(&b, "Weaknesses", v.Weaknesses)
	section(&b, "Recommendations", v.ActionableFeedback)

	return VerdictCard.Width(CardWidth).Render(strings.TrimRight(b.String(), "\n"))
}

// Report renders the verdict plus the per-category breakdown and history.
func Report(r *interview.ReportView) string {
	var b strings.Builder
	b.WriteString(Verdict(r.Status, r.Verdict))
	b.WriteString("\n\n")

	p := r.Performance
	b.WriteString(Title.Render("Performance"))
	b.WriteString("\n")
	rows := []struct {
		name  string
		value float64
	}{
		{"Average", p.AverageScore},
		{"Time management", p.TimeManagement},
		{"Technical", p.TechnicalScore},
		{"Behavioral", p.BehavioralScore},
		{"Conceptual", p.ConceptualScore},
		{"Scenario", p.ScenarioScore},
	}
	for _, row := range rows {
		b.WriteString(Progress(fmt.Sprintf("%-16s", row.name), row.value/100, CardWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Title.Render("Questions"))
	b.WriteString("\n")
	for _, a := range r.Attempts {
		score := Hint.Render("unanswered")
		if a.Score != nil {
			score = scoreText(a.Score.Overall)
		}
		fmt.Fprintf(&b, "%2d. [%s/%s] %s  %s\n", a.Number, a.Difficulty, a.Category, score, truncate(a.Question, 48))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Sessions renders a candidate's session list as a table.
func Sessions(list []interview.Summary) string {
	if len(list) == 0 {
		return Hint.Render("No interviews found.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-24s  %-11s  %5s  %5s  %s\n", "ID", "Role", "Status", "Asked", "Score", "Readiness")
	b.WriteString(strings.Repeat("─", 100))
	b.WriteString("\n")
	for _, s := range list {
		score := "-"
		if s.FinalScore != nil {
			score = fmt.Sprintf("%d", *s.FinalScore)
		}
		fmt.Fprintf(&b, "%-36s  %-24s  %-11s  %5d  %5s  %s\n",
			s.SessionID, truncate(s.JobRole, 24), s.Status, s.QuestionsAsked, score, s.Readiness)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Progress renders a labelled horizontal bar for a 0-1 fraction.
func Progress(label string, fraction float64, width int) string {
	result := Body.Render(label) + "  "
	barWidth := width - lipgloss.Width(result) - 6
	if barWidth < 4 {
		barWidth = 4
	}

	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(float64(barWidth) * fraction)
	result += ProgressFilled.Render(strings.Repeat(" ", filled))
	result += ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += Hint.Render(fmt.Sprintf("  %3d%%", int(math.Round(fraction*100))))
	return result
}

func section(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(Title.Render(title))
	b.WriteString("\n")
	for _, it := range items {
		fmt.Fprintf(b, "  • %s\n", it)
	}
}

func badge(text string, c color.Color) string {
	return Badge.Foreground(c).Render(text)
}

func scoreText(v float64) string {
	c := Error
	switch {
	case v >= 75:
		c = Success
	case v >= 50:
		c = Warning
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(fmt.Sprintf("%.0f", v))
}

func statusText(s interview.Status) string {
	c := Secondary
	switch s {
	case interview.StatusCompleted:
		c = Success
	case interview.StatusTerminated:
		c = Error
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(s))
}

func difficultyColor(d interview.Difficulty) color.Color {
	switch d {
	case interview.DifficultyHard:
		return Error
	case interview.DifficultyMedium:
		return Accent
	default:
		return Success
	}
}

func readinessColor(r interview.Readiness) color.Color {
	switch r {
	case interview.ReadinessStrong:
		return Success
	case interview.ReadinessAverage:
		return Warning
	default:
		return Error
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
