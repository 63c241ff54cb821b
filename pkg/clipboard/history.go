package clipboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/gridsheet/pkg/tsv"
)

const layoutISO = "2006-01-02"

// Entry is one recorded copy.
type Entry struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Text    string    `json:"text"`
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
}

// History keeps the most recent copies on disk, one file per copy bucketed
// by day. It satisfies Clipboard: reads return the newest entry.
type History struct {
	d     *diskv.Diskv
	base  string
	limit int

	mu   sync.Mutex
	last int64
	now  func() time.Time

	debugLog io.Writer
}

// OpenHistory opens or creates a history rooted at base keeping at most
// limit entries.
func OpenHistory(base string, limit int) (*History, error) {
	if base == "" {
		return nil, fmt.Errorf("clipboard: history base path required")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("clipboard: ensure history path: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}
	return &History{
		d: diskv.New(diskv.Options{
			BasePath:          base,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		base:  base,
		limit: limit,
		now:   time.Now,
	}, nil
}

// SetDebugWriter configures an optional writer for diagnostic output.
func (h *History) SetDebugWriter(w io.Writer) {
	h.debugLog = w
}

func (h *History) logf(format string, args ...any) {
	if h.debugLog == nil {
		return
	}
	fmt.Fprintf(h.debugLog, "%s history."+format+"\n",
		append([]any{time.Now().Format("2006-01-02T15:04:05")}, args...)...)
}

// keys look like `2006-01-02-<nanos>`; the day becomes the directory.
func keyToPathTransform(s string) *diskv.PathKey {
	i := strings.LastIndex(s, "-")
	if i < 0 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{s[:i]},
		FileName: s[i+1:],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func (h *History) nextKey() (string, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := h.now()
	n := t.UnixNano()
	if n <= h.last {
		n = h.last + 1
	}
	h.last = n
	return fmt.Sprintf("%s-%020d", t.Format(layoutISO), n), t
}

// WriteText records text as the newest entry and prunes the oldest ones
// beyond the limit. Empty text is not recorded.
func (h *History) WriteText(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	key, created := h.nextKey()
	rows := tsv.Decode(text)
	e := Entry{ID: key, Created: created, Text: text, Rows: len(rows)}
	if len(rows) > 0 {
		e.Cols = len(rows[0])
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("clipboard: encode entry: %w", err)
	}
	if err := h.d.Write(key, data); err != nil {
		return fmt.Errorf("clipboard: write entry: %w", err)
	}
	return h.prune(ctx)
}

// ReadText returns the newest entry's text.
func (h *History) ReadText(ctx context.Context) (string, error) {
	entries, err := h.Entries(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", ErrEmpty
	}
	return entries[0].Text, nil
}

// Entries lists the recorded copies, newest first. Unreadable or corrupt
// files are skipped and noted on the debug writer.
func (h *History) Entries(ctx context.Context) ([]Entry, error) {
	keys := h.sortedKeys(ctx)
	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		val, err := h.d.Read(key)
		if err != nil {
			h.logf("Entries skip %s: %v", key, err)
			continue
		}
		var e Entry
		if err := json.Unmarshal(val, &e); err != nil {
			h.logf("Entries skip %s: %v", key, err)
			continue
		}
		out = append(out, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Clear removes every entry.
func (h *History) Clear() error {
	if err := h.d.EraseAll(); err != nil {
		return fmt.Errorf("clipboard: clear history: %w", err)
	}
	return os.MkdirAll(h.base, 0o755)
}

func (h *History) sortedKeys(ctx context.Context) []string {
	var keys []string
	for key := range h.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

func (h *History) prune(ctx context.Context) error {
	keys := h.sortedKeys(ctx)
	if len(keys) <= h.limit {
		return nil
	}
	for _, key := range keys[h.limit:] {
		if err := h.d.Erase(key); err != nil {
			return fmt.Errorf("clipboard: prune %s: %w", key, err)
		}
	}
	return nil
}
