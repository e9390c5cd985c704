package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-quest/internal/storage"
)

// Ledger layout constants
const (
	ledgerRows    = 8 // Runs listed on the game-over screen
	ledgerMinRows = 3 // Table height floor on tiny terminals
)

// LedgerView shows this session's best runs under the game-over banner.
type LedgerView struct {
	store *storage.Store
	table table.Model
	stats storage.SessionStats
	runs  []storage.RunRecord
	last  int64 // ID of the run that just ended, highlighted in the table
}

// NewLedgerView creates a ledger view. A nil store shows an empty ledger.
func NewLedgerView(store *storage.Store, height int) *LedgerView {
	v := &LedgerView{store: store}
	v.table = newLedgerTable(height)
	return v
}

func newLedgerTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Kills", Width: 7},
		{Title: "Boss", Width: 6},
		{Title: "Time", Width: 9},
		{Title: "Ended", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(min(ledgerRows, height-12), ledgerMinRows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Resize rebuilds the table for a new terminal height.
func (v *LedgerView) Resize(height int) {
	v.table = newLedgerTable(height)
	v.updateRows()
}

// Record saves a finished run and reloads the table. Storage is
// best-effort: on error the run is simply missing from the ledger.
func (v *LedgerView) Record(kills int, boss bool, played time.Duration) error {
	if v.store == nil {
		return nil
	}
	id, err := v.store.SaveRun(kills, boss, played)
	if err != nil {
		return err
	}
	v.last = id
	return v.Reload()
}

// Reload fetches the top runs and session totals.
func (v *LedgerView) Reload() error {
	if v.store == nil {
		return nil
	}
	runs, err := v.store.TopRuns(ledgerRows)
	if err != nil {
		return err
	}
	stats, err := v.store.Stats()
	if err != nil {
		return err
	}
	v.runs, v.stats = runs, stats
	v.updateRows()
	return nil
}

// updateRows updates the table with current runs and selects the latest one.
func (v *LedgerView) updateRows() {
	rows := make([]table.Row, len(v.runs))
	cursor := 0
	for i, r := range v.runs {
		boss := "-"
		if r.BossSpawned {
			boss = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Kills),
			boss,
			formatPlayed(time.Duration(r.DurationMs) * time.Millisecond),
			r.CreatedAt.Format("15:04:05"),
		}
		if r.ID == v.last {
			cursor = i
		}
	}
	v.table.SetRows(rows)
	v.table.SetCursor(cursor)
}

// View renders the ledger block.
func (v *LedgerView) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("THIS SESSION"))
	b.WriteString("\n")

	if len(v.runs) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No runs recorded"))
		return b.String()
	}

	statStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statStyle.Render(fmt.Sprintf(
		"%d runs · best %d · avg %.1f kills · %s played",
		v.stats.Runs, v.stats.BestKills, v.stats.AvgKills,
		formatPlayed(time.Duration(v.stats.TotalMs)*time.Millisecond),
	)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(v.table.View()))
	return b.String()
}

// formatPlayed renders a duration as m:ss.
func formatPlayed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
