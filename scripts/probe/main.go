// Command probe submits the configured example portfolios to the
// extraction service several times and reports latency and what each
// profile contained.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/folio/config"
	"github.com/use-agent/folio/extractor"
	"github.com/use-agent/folio/render"
)

// CLI flags
var (
	runs    = flag.Int("runs", 3, "Number of runs per URL for averaging")
	timeout = flag.Duration("timeout", 90*time.Second, "Per-request timeout")
	output  = flag.String("output", "probe-results.json", "JSON output file path")
)

type runResult struct {
	Run       int    `json:"run"`
	Success   bool   `json:"success"`
	TotalMs   int64  `json:"total_ms"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	HasBio    bool   `json:"has_bio"`
	HasImage  bool   `json:"has_image"`
	Employers int    `json:"employers"`
	Videos    int    `json:"videos"`
	Cards     int    `json:"rendered_cards"`
	Embeds    int    `json:"rendered_embeds"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

type urlResult struct {
	Label     string      `json:"label"`
	URL       string      `json:"url"`
	Runs      []runResult `json:"runs"`
	AvgMs     float64     `json:"avg_ms"`
	Successes int         `json:"successes"`
}

type probeReport struct {
	Timestamp    string      `json:"timestamp"`
	ExtractorURL string      `json:"extractor_url"`
	RunsPerURL   int         `json:"runs_per_url"`
	Results      []urlResult `json:"results"`
}

func main() {
	flag.Parse()
	cfg := config.Load()

	urls := cfg.Examples
	for _, arg := range flag.Args() {
		urls = append(urls, config.Example{Name: arg, URL: arg})
	}

	fmt.Println("=== Folio Extraction Probe ===")
	fmt.Printf("Extractor: %s\n", cfg.Extractor.BaseURL)
	fmt.Printf("Runs/URL:  %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	client := extractor.NewClient(cfg.Extractor.BaseURL, nil)
	report := probeReport{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ExtractorURL: cfg.Extractor.BaseURL,
		RunsPerURL:   *runs,
	}

	for _, ex := range urls {
		fmt.Printf("Probing [%s] %s ...\n", ex.Name, ex.URL)
		ur := urlResult{Label: ex.Name, URL: ex.URL}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := probe(client, ex.URL, i)
			if rr.Success {
				fmt.Printf("OK  %dms  %s (%d employers, %d videos)\n", rr.TotalMs, rr.Name, rr.Employers, rr.Videos)
			} else {
				fmt.Printf("FAILED: [%s] %s\n", rr.ErrorCode, rr.Error)
			}
			ur.Runs = append(ur.Runs, rr)
		}

		var total int64
		for _, r := range ur.Runs {
			if r.Success {
				ur.Successes++
				total += r.TotalMs
			}
		}
		if ur.Successes > 0 {
			ur.AvgMs = float64(total) / float64(ur.Successes)
		}
		report.Results = append(report.Results, ur)
		fmt.Println()
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func probe(client *extractor.Client, url string, run int) runResult {
	rr := runResult{Run: run}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	p, err := client.Extract(ctx, url)
	rr.TotalMs = time.Since(start).Milliseconds()
	if err != nil {
		se := extractor.Classify(err)
		rr.ErrorCode = se.Code
		rr.Error = se.Error()
		return rr
	}

	rr.Success = true
	rr.Name = p.BasicInfo.Name
	rr.Role = p.BasicInfo.Role
	rr.HasBio = p.BasicInfo.Bio.Present()
	rr.HasImage = p.BasicInfo.Image.Present()
	rr.Employers = len(p.Employers)
	rr.Videos = len(p.Videos)

	// Render the profile and count what actually reached the page.
	html, err := render.HTML(render.Render(p))
	if err != nil {
		rr.Success = false
		rr.ErrorCode = "RENDER_FAILED"
		rr.Error = err.Error()
		return rr
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		rr.Success = false
		rr.ErrorCode = "RENDER_FAILED"
		rr.Error = err.Error()
		return rr
	}
	rr.Cards = doc.Find(".employer-card").Length()
	rr.Embeds = doc.Find("iframe.video-embed").Length()
	return rr
}

func printTable(results []urlResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "URL\tAvg Latency\tOK\tName\tEmployers\tVideos\tRendered\n")
	fmt.Fprintf(w, "───\t───────────\t──\t────\t─────────\t──────\t────────\n")

	for _, r := range results {
		if r.Successes == 0 {
			fmt.Fprintf(w, "%s\tFAILED\t0/%d\t-\t-\t-\t-\n", truncateURL(r.URL, 40), len(r.Runs))
			continue
		}
		last := lastSuccess(r.Runs)
		fmt.Fprintf(w, "%s\t%dms\t%d/%d\t%s\t%d\t%d\t%d+%d\n",
			truncateURL(r.URL, 40),
			int64(r.AvgMs),
			r.Successes, len(r.Runs),
			last.Name,
			last.Employers,
			last.Videos,
			last.Cards, last.Embeds,
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func lastSuccess(runs []runResult) runResult {
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Success {
			return runs[i]
		}
	}
	return runResult{}
}

func truncateURL(u string, max int) string {
	if len(u) <= max {
		return u
	}
	return u[:max-3] + "..."
}

func writeJSON(path string, report probeReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
