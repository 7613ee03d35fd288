package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/report"
)

// Item represents a single exported entry with the local path of its
// downloaded receipt, if any.
type Item struct {
	Entry    *entry.Entry
	FilePath string
}

// Service bundles entries and their receipts for download.
type Service struct {
	entries  *entry.Service
	client   *http.Client
	apiToken string
}

// NewService creates an export Service. apiToken, when set, is sent to the
// receipt store on every download.
func NewService(entries *entry.Service, apiToken string) *Service {
	return &Service{
		entries:  entries,
		client:   &http.Client{Timeout: 30 * time.Second},
		apiToken: apiToken,
	}
}

// Export downloads receipts for entries matching the filter into outputDir
// and writes the CSV report alongside them. It returns the items linking
// entries to their downloaded files.
func (s *Service) Export(ctx context.Context, filter entry.ListFilter, outputDir string) ([]Item, error) {
	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(outputDir, "report.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}
	defer csvFile.Close()

	if err := report.WriteCSV(csvFile, entries); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	items := make([]Item, 0, len(entries))

	for _, e := range entries {
		item := Item{Entry: e}

		if e.ReceiptURL != "" {
			path, err := s.downloadReceipt(ctx, e, outputDir)
			if err != nil {
				return nil, fmt.Errorf("downloading receipt for entry %s: %w", e.ID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) downloadReceipt(ctx context.Context, e *entry.Entry, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.ReceiptURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.apiToken != "" {
		req.Header.Set("Authorization", "Token "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, e.ReceiptURL)
	}

	filename := s.determineFilename(resp, e)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

func (s *Service) determineFilename(resp *http.Response, e *entry.Entry) string {
	// 1. Try the filename from the Content-Disposition header.
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if filename, ok := params["filename"]; ok && filename != "" {
				return strings.ReplaceAll(filepath.Base(filename), " ", "_")
			}
		}
	}

	// 2. Fallback: generate a name from entry details.
	ext := ".pdf"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	safeDesc := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, e.Description)

	return fmt.Sprintf("%s_%s%s", e.Date.Format("20060102"), safeDesc, ext)
}

// GenerateManifest creates a plain-text listing of the exported items,
// included in the bundle so reviewers can scan it without opening the CSV.
func (s *Service) GenerateManifest(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		date := item.Entry.Date.Format(time.DateOnly)
		desc := item.Entry.Description
		amount := item.Entry.Amount.StringFixed(2)

		receipt := "no receipt"
		if item.FilePath != "" {
			receipt = filepath.Base(item.FilePath)
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s THB | %s | %s\n",
			date, desc, amount, item.Entry.Status, receipt))
	}

	return sb.String()
}
