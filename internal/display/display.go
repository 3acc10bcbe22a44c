// Package display renders cards, estimations and decisions for the terminal.
package display

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokerbandit/equity"
	"github.com/lox/pokerbandit/internal/decision"
	"github.com/lox/pokerbandit/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	redSuitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	blackSuitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	stayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	foldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

// DisableColor forces plain ASCII output regardless of the terminal.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Card renders a card with its suit glyph, e.g. "A♠".
func Card(c poker.Card) string {
	text := c.Rank().String() + c.Suit().Symbol()
	if c.Suit().IsRed() {
		return redSuitStyle.Render(text)
	}
	return blackSuitStyle.Render(text)
}

// Cards renders cards separated by spaces, or "-" when empty.
func Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Action renders a decision action.
func Action(a decision.Action) string {
	if a == decision.Stay {
		return stayStyle.Render(string(a))
	}
	return foldStyle.Render(string(a))
}

func percent(p float64) string {
	return percentStyle.Render(fmt.Sprintf("%.1f%%", p*100))
}

// Decision writes the hand, estimate and action for one decision point.
func Decision(w io.Writer, hole, board []poker.Card, d decision.Decision, verbose bool) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Bot cards:      "), Cards(hole))
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Community cards:"), Cards(board))
	fmt.Fprintf(w, "Estimated Win Probability: %.3f\n", d.Result.Probability)
	if verbose {
		fmt.Fprintln(w)
		Result(w, d.Result)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Bot decision:"), Action(d.Action))
}

// Result writes the estimation detail: trial counts, win rates by opponent
// category and the holdings the bandit sampled most.
func Result(w io.Writer, r *equity.Result) {
	fmt.Fprintf(w, "%d trials over %d/%d candidates in %v (run %s)\n",
		r.Trials, r.Sampled(), len(r.Candidates), r.Elapsed.Truncate(time.Millisecond), r.RunID)
	low, high := r.Interval95()
	fmt.Fprintf(w, "per-candidate mean %s (95%% interval %s to %s), pooled %s\n",
		percent(r.Probability), percent(low), percent(high), percent(r.PooledWinRate()))

	byCat := r.ByCategory()
	if len(byCat) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render("opponent"), headerStyle.Render("win"))
		for _, cat := range poker.HoleCardCategories {
			if p, ok := byCat[cat]; ok {
				fmt.Fprintf(tw, "%s\t%s\n", categoryStyle.Render(string(cat)), percent(p))
			}
		}
		tw.Flush()
	}

	top := r.MostSampled(5)
	if len(top) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", headerStyle.Render("most sampled"), headerStyle.Render("trials"), headerStyle.Render("win"))
		for _, c := range top {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", Cards(c.Cards[:]), c.Trials, percent(c.WinRate()))
		}
		tw.Flush()
	}
}

// Rank writes an evaluated hand.
func Rank(w io.Writer, cards []poker.Card, hr poker.HandRank) {
	ranks := make([]string, 0, 5)
	for _, r := range hr.Tiebreak() {
		ranks = append(ranks, r.String())
	}
	fmt.Fprintf(w, "%s\n", Cards(cards))
	fmt.Fprintf(w, "%s %s\n", categoryStyle.Render(hr.Category.String()), strings.Join(ranks, " "))
}

// BatchRow is one line of batch output.
type BatchRow struct {
	Name     string
	Hole     []poker.Card
	Board    []poker.Card
	Decision decision.Decision
}

// Batch writes a table of scenario results, sorted by name.
func Batch(w io.Writer, rows []BatchRow) {
	rows = slices.Clone(rows)
	slices.SortFunc(rows, func(a, b BatchRow) int { return strings.Compare(a.Name, b.Name) })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("scenario"),
		headerStyle.Render("hole"),
		headerStyle.Render("board"),
		headerStyle.Render("win"),
		headerStyle.Render("trials"),
		headerStyle.Render("action"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			row.Name,
			Cards(row.Hole),
			Cards(row.Board),
			percent(row.Decision.Result.Probability),
			row.Decision.Result.Trials,
			Action(row.Decision.Action))
	}
	tw.Flush()
}
