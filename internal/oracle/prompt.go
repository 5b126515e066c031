package oracle

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/interviewd/internal/interview"
)

const questionSystemPrompt = `You are an expert technical interviewer. Generate realistic, relevant interview questions based on the candidate's resume and the job description.

Questions should be:
- Clear and specific
- Appropriate for the requested difficulty level
- Aligned with the job requirements
- Progressive, building on previous questions where it makes sense
- Professional and unbiased

Return the requested category and difficulty unless they make no sense for this candidate.`

const evaluationSystemPrompt = `You are an expert interviewer providing objective, constructive evaluation of candidate responses. Be fair but honest in your assessment.`

const reportSystemPrompt = `You are an expert hiring manager providing detailed, actionable feedback to help candidates improve.`

// buildQuestionMessage constructs the user message for a question proposal.
func buildQuestionMessage(in interview.QuestionContext, maxPrior int) string {
	var b strings.Builder

	b.WriteString("Generate an interview question for the following:\n\n")
	fmt.Fprintf(&b, "JOB ROLE: %s\n", in.JobRole)
	fmt.Fprintf(&b, "JOB DESCRIPTION: %s\n", in.JobDescription)

	b.WriteString("\nCANDIDATE RESUME:\n")
	r := in.Resume
	if r == nil {
		b.WriteString("Not available\n")
	} else {
		fmt.Fprintf(&b, "Skills: %s\n", orNA(strings.Join(r.Skills, ", ")))
		fmt.Fprintf(&b, "Experience: %s\n", orNA(r.Experience))
		fmt.Fprintf(&b, "Education: %s\n", orNA(r.Education))
		fmt.Fprintf(&b, "Projects: %s\n", orNA(r.Projects))
		if r.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", r.Summary)
		}
	}

	b.WriteString("\nQUESTION REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Difficulty Level: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "- Category: %s\n", in.Category)
	fmt.Fprintf(&b, "- Time Limit: %d seconds\n", in.TimeLimit)

	if len(in.PriorQuestions) > 0 {
		b.WriteString("\nPREVIOUS QUESTIONS (avoid repetition):\n")
		b.WriteString(numbered(in.PriorQuestions, maxPrior))
		b.WriteString("\n")
	}

	if in.HasPerformance {
		b.WriteString("\nCANDIDATE'S PREVIOUS PERFORMANCE:\n")
		fmt.Fprintf(&b, "Average Score: %.0f\n", in.AverageScore)
		fmt.Fprintf(&b, "Last Question Score: %.0f\n", in.LastScore)
	}

	return b.String()
}

func buildEvaluationMessage(in interview.AnswerContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "QUESTION: %s\n", in.Question)
	fmt.Fprintf(&b, "EXPECTED KEY POINTS: %s\n", orNA(strings.Join(in.ExpectedKeyPoints, ", ")))
	fmt.Fprintf(&b, "DIFFICULTY LEVEL: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "CATEGORY: %s\n", in.Category)
	fmt.Fprintf(&b, "\nCANDIDATE'S ANSWER: %s\n", in.Answer)
	fmt.Fprintf(&b, "\nTIME TAKEN: %d seconds (Allowed: %d seconds)\n", in.TimeTaken, in.TimeAllowed)

	b.WriteString(`
Evaluate this answer and provide scores (0-100) for:
1. Accuracy - How correct and factual is the answer?
2. Clarity - How clear and well-structured is the response?
3. Depth - How thorough and comprehensive is the answer?
4. Relevance - How well does it address the question?
5. Time Efficiency - Was the answer provided within time constraints?

Also provide an overall score (0-100), brief feedback (2-3 sentences), and whether to increase, decrease, or maintain difficulty for the next question.`)

	return b.String()
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": func(a interview.Attempt) string {
		if a.Score == nil {
			return "N/A"
		}
		return fmt.Sprintf("%.0f", a.Score.Overall)
	},
}).Parse(`Generate a comprehensive interview performance report.

JOB ROLE: {{.JobRole}}
FINAL SCORE: {{.FinalScore}}/100
READINESS LEVEL: {{.Readiness}}

PERFORMANCE METRICS:
- Total Questions: {{.Performance.TotalQuestions}}
- Questions Answered: {{.Performance.QuestionsAnswered}}
- Average Score: {{printf "%.0f" .Performance.AverageScore}}
- Time Management: {{printf "%.0f" .Performance.TimeManagement}}
- Technical Score: {{printf "%.0f" .Performance.TechnicalScore}}
- Behavioral Score: {{printf "%.0f" .Performance.BehavioralScore}}
- Conceptual Score: {{printf "%.0f" .Performance.ConceptualScore}}
- Scenario Score: {{printf "%.0f" .Performance.ScenarioScore}}

QUESTION HISTORY:
{{range .Attempts}}
Question {{.Number}} ({{.Difficulty}} - {{.Category}}):
Q: {{.Question}}
A: {{if .Answer}}{{.Answer}}{{else}}(no answer){{end}}
Score: {{score .}}
{{end}}
Provide:
1. Top 3-5 strengths
2. Top 3-5 weaknesses or areas for improvement
3. 5-7 actionable recommendations
4. A hiring readiness assessment for the role (ready, conditional or not-ready) with a brief explanation`))

func buildReportMessage(in interview.ReportContext) (string, error) {
	var b strings.Builder
	if err := reportTemplate.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render report prompt: %w", err)
	}
	return b.String(), nil
}

// numbered formats items as a numbered list, keeping only the last keep.
func numbered(items []string, keep int) string {
	offset := 0
	if keep > 0 && len(items) > keep {
		offset = len(items) - keep
		items = items[offset:]
	}
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", offset+i+1, it)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
