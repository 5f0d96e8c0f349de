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

	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

// Item is one exported voucher with the local paths of its downloaded files.
type Item struct {
	Voucher *voucher.Voucher
	Paths   []string
}

// Service downloads voucher attachments.
type Service struct {
	client *http.Client
	token  string
}

func NewService(timeout time.Duration) *Service {
	return &Service{client: &http.Client{Timeout: timeout}}
}

// SetToken sets the bearer token sent with downloads.
func (s *Service) SetToken(token string) {
	s.token = token
}

// Export downloads every file of vouchers into outputDir. Vouchers without
// files are returned with no paths.
func (s *Service) Export(ctx context.Context, vouchers []*voucher.Voucher, outputDir string) ([]Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(vouchers))

	for _, v := range vouchers {
		item := Item{Voucher: v}

		for n, f := range v.Files {
			if f.URL == "" {
				continue
			}

			path, err := s.download(ctx, v, n+1, f.URL, outputDir)
			if err != nil {
				return nil, fmt.Errorf("downloading %s for voucher %s: %w", f.Name, v.ID, err)
			}

			item.Paths = append(item.Paths, path)
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) download(ctx context.Context, v *voucher.Voucher, n int, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, url)
	}

	path := uniquePath(filepath.Join(dir, filename(resp, v, n)))

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

// filename prefers the server's Content-Disposition name and otherwise builds
// <YYYYMMDD>_<title>_<n><ext>.
func filename(resp *http.Response, v *voucher.Voucher, n int) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return strings.ReplaceAll(filepath.Base(name), " ", "_")
			}
		}
	}

	ext := ".pdf"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	date := "undated"
	if !v.Date.IsZero() {
		date = v.Date.Format("20060102")
	}

	return fmt.Sprintf("%s_%s_%d%s", date, sanitize(v.Title), n, ext)
}

func sanitize(s string) string {
	if s == "" {
		return "voucher"
	}

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, s)
}

// uniquePath appends -2, -3, ... before the extension until path is unused.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// Summary renders one line per exported voucher.
func Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		v := item.Voucher

		files := "no files"
		if len(item.Paths) > 0 {
			names := make([]string, len(item.Paths))
			for i, p := range item.Paths {
				names[i] = filepath.Base(p)
			}

			files = strings.Join(names, ", ")
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s | %s | %s\n",
			format.Date(v.Date), v.Title, format.OptionalAmount(v.Amount), v.Status.Label(), files))
	}

	return sb.String()
}

// SummaryFileName is written next to the exported files.
const SummaryFileName = "summary.txt"

// SaveSummary writes Summary(items) to dir and returns the file path.
func SaveSummary(dir string, items []Item) (string, error) {
	path := filepath.Join(dir, SummaryFileName)

	if err := os.WriteFile(path, []byte(Summary(items)), 0o644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}

	return path, nil
}
