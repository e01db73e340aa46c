package cli

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/pantry/internal/expiry"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/ui"
	"github.com/idilsaglam/pantry/internal/views"
)

// -------------- rendering helpers --------------

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func glyph(it model.Item) string {
	if ui.Current().NoEmoji {
		return "[" + string(model.NormalizeCategory(string(it.Category))) + "]"
	}
	return it.Glyph()
}

func header(items []model.Item, now time.Time) string {
	counts := views.SeverityCounts(items, now)
	soon := counts[expiry.Today] + counts[expiry.Tomorrow] + counts[expiry.Soon]
	t := ui.Current()
	fresh := len(items) - counts[expiry.Expired] - soon
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		ui.C(t.Title, "Pantry"),
		ui.C(t.Error, "expired"), counts[expiry.Expired],
		ui.C(t.Pending, "soon"), soon,
		ui.C(t.Accent, "total"), len(items),
		ui.C(t.Muted, ui.ProgressBar(fresh, len(items), 16)),
	)
}

func itemLine(it model.Item, st expiry.Status) string {
	name := runewidth.Truncate(it.Name, 40, "...")
	line := fmt.Sprintf("%s %s %s %s", ui.Current().Bullet, ui.C("\033[2m", shortID(it.ID)), glyph(it), name)
	if it.Quantity != "" {
		line += "  " + ui.C(ui.Current().Muted, it.Quantity)
	}
	line += "  " + ui.Badge(st)
	if it.Note != "" {
		line += "  " + ui.C(ui.Current().Muted, "("+it.Note+")")
	}
	return line
}

func none() []string {
	return []string{ui.C(ui.Current().Muted, "(none)")}
}

func batchLines(batches []model.Batch, now time.Time) []string {
	if len(batches) == 0 {
		return []string{ui.C(ui.Current().Muted, "pantry is empty")}
	}
	var lines []string
	for i, b := range batches {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.C(ui.Current().Accent, fmt.Sprintf("%s (%d)", b.Label(now), len(b.Items))))
		for _, it := range b.Items {
			lines = append(lines, itemLine(it, expiry.Classify(it.ExpiresAt, now)))
		}
	}
	return lines
}

func categoryLines(items []model.Item, now time.Time) []string {
	groups := views.ByCategory(items)
	if len(groups) == 0 {
		return none()
	}
	var lines []string
	for i, g := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		title := g.Category.Icon() + " " + g.Category.Label()
		if ui.Current().NoEmoji {
			title = g.Category.Label()
		}
		lines = append(lines, ui.C(ui.Current().Accent, fmt.Sprintf("%s (%d)", title, len(g.Items))))
		for _, it := range g.Items {
			lines = append(lines, itemLine(it, expiry.Classify(it.ExpiresAt, now)))
		}
	}
	return lines
}

func expiringLines(items []model.Item, days int, now time.Time) []string {
	exp := views.ExpiringWithin(items, days, now)
	if len(exp) == 0 {
		return none()
	}
	lines := make([]string, 0, len(exp))
	for _, e := range exp {
		lines = append(lines, itemLine(e.Item, e.Status))
	}
	return lines
}

func recentLines(items []model.Item, now time.Time) []string {
	recent := views.RecentFirst(items)
	if len(recent) == 0 {
		return none()
	}
	lines := make([]string, 0, len(recent))
	for _, it := range recent {
		lines = append(lines, itemLine(it, expiry.Classify(it.ExpiresAt, now)))
	}
	return lines
}
