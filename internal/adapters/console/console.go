package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mailsentry/email-threat-analyzer/internal/application"
	"github.com/mailsentry/email-threat-analyzer/internal/domain"
	"github.com/mailsentry/email-threat-analyzer/internal/ports"
)

// Console is the interactive menu-driven surface of the analyzer. All
// decision logic lives behind the service; the console only gathers input
// and renders reports.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	parser  ports.EmailParser
	service *application.AnalysisService
}

// New creates a console reading from in and writing to out.
func New(in io.Reader, out io.Writer, parser ports.EmailParser, service *application.AnalysisService) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		parser:  parser,
		service: service,
	}
}

// Run starts the menu loop and blocks until the user exits or input ends.
func (c *Console) Run() {
	fmt.Fprintln(c.out, "===================================================")
	fmt.Fprintln(c.out, "            EMAIL THREAT ANALYSIS SYSTEM           ")
	fmt.Fprintln(c.out, "===================================================")
	fmt.Fprintln(c.out, "Analyzes emails for phishing, spam, spoofing, and")
	fmt.Fprintln(c.out, "malicious links, and recommends what to do next.")

	for {
		fmt.Fprintln(c.out, "\n----- MAIN MENU -----")
		fmt.Fprintln(c.out, "1. Analyze email by manual input")
		fmt.Fprintln(c.out, "2. Analyze email from file")
		fmt.Fprintln(c.out, "3. Help")
		fmt.Fprintln(c.out, "4. Exit")
		fmt.Fprint(c.out, "\nEnter your choice (1-4): ")

		choice, ok := c.readChoice(1, 4)
		if !ok {
			return
		}

		switch choice {
		case 1:
			c.manualInput()
		case 2:
			c.fileInput()
		case 3:
			c.help()
		case 4:
			fmt.Fprintln(c.out, "\nGoodbye!")
			return
		}
	}
}

// AnalyzeFile runs a single non-interactive analysis of a message file and
// renders the report.
func (c *Console) AnalyzeFile(path string) error {
	email, err := c.parser.FromFile(path)
	if err != nil {
		return err
	}

	report := c.service.AnalyzeEmail(email)
	c.renderReport(report)
	return nil
}

// readChoice reads lines until a number in [min,max] arrives. ok is false
// when input is exhausted.
func (c *Console) readChoice(min, max int) (int, bool) {
	for c.in.Scan() {
		choice, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err == nil && choice >= min && choice <= max {
			return choice, true
		}
		fmt.Fprintf(c.out, "Invalid input. Enter a number between %d and %d: ", min, max)
	}
	return 0, false
}

func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) manualInput() {
	fmt.Fprintln(c.out, "\n----- MANUAL EMAIL INPUT -----")

	sender, ok := c.readLine("Enter sender email: ")
	if !ok {
		return
	}

	subject, ok := c.readLine("Enter email subject: ")
	if !ok {
		return
	}

	fmt.Fprintln(c.out, "Enter email body (type 'END' on a new line to finish):")
	var lines []string
	for c.in.Scan() {
		line := c.in.Text()
		if line == "END" {
			break
		}
		lines = append(lines, line)
	}
	body := strings.TrimSpace(strings.Join(lines, "\n"))

	email := c.parser.FromUserInput(sender, subject, body)
	c.analyzeAndRender(email)
}

func (c *Console) fileInput() {
	fmt.Fprintln(c.out, "\n----- EMAIL FROM FILE -----")

	path, ok := c.readLine("Enter the path to the email file: ")
	if !ok {
		return
	}

	email, err := c.parser.FromFile(path)
	if err != nil {
		fmt.Fprintf(c.out, "Error parsing email: %v\n", err)
		return
	}

	c.analyzeAndRender(email)
}

func (c *Console) analyzeAndRender(email domain.Email) {
	fmt.Fprintln(c.out, "\nAnalyzing email...")
	fmt.Fprintf(c.out, "Sender: %s\n", email.Sender)
	fmt.Fprintf(c.out, "Subject: %s\n", email.Subject)
	fmt.Fprintf(c.out, "URLs found: %d\n", len(email.ExtractedURLs))

	report := c.service.AnalyzeEmail(email)
	c.renderReport(report)
}

func (c *Console) renderReport(report *domain.ThreatReport) {
	fmt.Fprintln(c.out, "\n========== EMAIL THREAT ANALYSIS REPORT ==========")

	fmt.Fprintln(c.out, "\nEmail details:")
	fmt.Fprintf(c.out, "- Sender: %s\n", report.Email.Sender)
	fmt.Fprintf(c.out, "- Subject: %s\n", report.Email.Subject)

	verdict := "NO"
	if report.IsMalicious() {
		verdict = "YES"
	}
	fmt.Fprintln(c.out, "\nOverall assessment:")
	fmt.Fprintf(c.out, "- Malicious: %s\n", verdict)
	fmt.Fprintf(c.out, "- Threat score: %.1f%%\n", report.OverallScore())

	if categories := report.Categories(); len(categories) > 0 {
		fmt.Fprintln(c.out, "\nDetected threats:")
		for _, category := range categories {
			confidence, _ := report.Confidence(category)
			fmt.Fprintf(c.out, "- %s (confidence: %.1f%%)\n", category, confidence)
		}
	}

	if links := report.SuspiciousLinks(); len(links) > 0 {
		fmt.Fprintln(c.out, "\nSuspicious links:")
		for _, link := range links {
			fmt.Fprintf(c.out, "- %s\n", link)
		}
	}

	if keywords := report.SuspiciousKeywords(); len(keywords) > 0 {
		fmt.Fprintln(c.out, "\nSuspicious keywords/phrases:")
		for _, keyword := range keywords {
			fmt.Fprintf(c.out, "- %s\n", keyword)
		}
	}

	if recommendations := report.Recommendations(); len(recommendations) > 0 {
		fmt.Fprintln(c.out, "\nRecommendations:")
		for _, recommendation := range recommendations {
			fmt.Fprintf(c.out, "- %s\n", recommendation)
		}
	}

	fmt.Fprintln(c.out, "\n==================================================")
}

func (c *Console) help() {
	fmt.Fprintln(c.out, "\n----- HELP -----")
	fmt.Fprintln(c.out, "Analysis components:")
	fmt.Fprintln(c.out, "1. Text analysis - suspicious keywords and patterns")
	fmt.Fprintln(c.out, "2. Link analysis - URL threat scoring")
	fmt.Fprintln(c.out, "3. Sender analysis - spoofing and header inconsistencies")
	fmt.Fprintln(c.out, "4. Classifier - heuristic catch-all signal")
	fmt.Fprintln(c.out, "\nCustomize keyword and domain lists in the config directory.")
}
