package render

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviewd/internal/llm"
	"github.com/abhisek/interviewd/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// LLMEvents renders recorded provider calls, newest first.
func LLMEvents(events []store.LLMRequestEventRecord) string {
	if len(events) == 0 {
		return Hint.Render("No LLM events found.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s  %-19s  %-12s  %-8s  %-24s  %6s  %6s  %7s  %s\n",
		"ID", "Timestamp", "Purpose", "Session", "Model", "In", "Out", "Ms", "OK")
	b.WriteString(strings.Repeat("─", 100))
	b.WriteString("\n")
	for _, e := range events {
		ok := okMark(e.Success)
		fmt.Fprintf(&b, "%-5d  %-19s  %-12s  %-8s  %-24s  %6d  %6d  %7d  %s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, shortID(e.SessionID),
			truncate(e.Model, 24), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
	return strings.TrimRight(b.String(), "\n")
}

// LLMEvent renders one call with its full request and response bodies.
func LLMEvent(e *store.LLMRequestEventRecord) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Label.Render(fmt.Sprintf("%-9s", label)), value)
	}
	field("ID", fmt.Sprintf("%d", e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	if e.SessionID != "" {
		field("Session", e.SessionID)
	}
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success", okMark(e.Success))
	if e.ErrorMessage != "" {
		field("Error", ErrorText.Render(e.ErrorMessage))
	}

	body := func(title, text string) {
		if text == "" {
			text = Hint.Render("(not captured)")
		}
		b.WriteString("\n")
		b.WriteString(Title.Render(title))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 60))
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
	}
	body("REQUEST", e.RequestBody)
	body("RESPONSE", e.ResponseBody)
	return strings.TrimRight(b.String(), "\n")
}

// LLMUsage renders token totals per purpose and an estimated cost per model.
func LLMUsage(byPurpose, byModel []store.LLMUsageStat) string {
	if len(byPurpose) == 0 {
		return Hint.Render("No LLM usage recorded yet.")
	}
	rule := strings.Repeat("─", 72)
	var b strings.Builder

	b.WriteString(Title.Render("Usage by Purpose"))
	fmt.Fprintf(&b, "\n%s\n%-16s  %6s  %10s  %10s  %10s  %8s\n%s\n",
		rule, "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms", rule)
	var calls, in, out int
	for _, st := range byPurpose {
		fmt.Fprintf(&b, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	fmt.Fprintf(&b, "%s\n%-16s  %6d  %10d  %10d  %10d\n", rule, "TOTAL", calls, in, out, in+out)

	if len(byModel) == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("\n")
	b.WriteString(Title.Render("Estimated Cost (USD)"))
	fmt.Fprintf(&b, "\n%s\n%-32s  %6s  %10s  %10s  %10s\n%s\n",
		rule, "Model", "Calls", "Input", "Output", "Cost", rule)
	var (
		total   float64
		unknown []string
	)
	for _, mu := range byModel {
		cost := "?"
		if price := llm.LookupCost(mu.Model); price != nil {
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unknown = append(unknown, mu.Model)
		}
		fmt.Fprintf(&b, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(&b, "%s\n%-32s  %6s  %10s  %10s  %10s\n", rule, label, "", "", "", formatCost(total))
	if len(unknown) > 0 {
		b.WriteString(Hint.Render("Pricing unavailable for: " + strings.Join(unknown, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func okMark(ok bool) string {
	if ok {
		return SuccessText.Render("✓")
	}
	return ErrorText.Render("✗")
}

// shortID keeps the first block of a UUID.
func shortID(id string) string {
	if id == "" {
		return "-"
	}
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return truncate(id, 8)
}
