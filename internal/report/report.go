// Package report renders a group's balances and transfer plan as a plain
// text summary that can be pasted into a chat.
package report

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mmynk/splitbill/internal/calculator"
)

// UnknownName is shown for ids that are no longer members of the group.
const UnknownName = "(unknown)"

// Member is a display entry for one member.
type Member struct {
	ID   string
	Name string
}

// Report holds everything needed to render a settlement summary.
type Report struct {
	// Title is usually the group name.
	Title    string
	Currency calculator.Currency

	// Members fixes the order balances are listed in.
	Members []Member

	// Balances are rounded balances as returned by calculator.RoundBalances.
	Balances  map[string]calculator.Amount
	Transfers []calculator.Transfer

	// Language controls digit grouping. Defaults to English.
	Language language.Tag
}

// Name returns the display name for id.
func (r *Report) Name(id string) string {
	for _, m := range r.Members {
		if m.ID == id {
			return m.Name
		}
	}
	return UnknownName
}

// Settled reports whether no transfers are needed.
func (r *Report) Settled() bool {
	return len(r.Transfers) == 0
}

// FormatAmount renders a with digit grouping and the currency code, e.g.
// "1,200 JPY". Signed amounts get an explicit "+" or "-".
func (r *Report) FormatAmount(a calculator.Amount, signed bool) string {
	tag := r.Language
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	abs := int64(a)
	if abs < 0 {
		abs = -abs
	}

	// Whole units are grouped by the printer; the minor units are appended
	// as exact digits so no amount passes through float64.
	scale := int64(1)
	for range r.Currency.Exponent {
		scale *= 10
	}
	digits := p.Sprint(number.Decimal(abs / scale))
	if exp := int(r.Currency.Exponent); exp > 0 {
		digits += decimalSeparator(p) + fmt.Sprintf("%0*d", exp, abs%scale)
	}

	var b strings.Builder
	switch {
	case a < 0:
		b.WriteString("-")
	case a > 0 && signed:
		b.WriteString("+")
	}
	b.WriteString(digits)
	if r.Currency.Code != "" {
		b.WriteString(" ")
		b.WriteString(r.Currency.Code)
	}
	return b.String()
}

// decimalSeparator returns the decimal mark of p's language, e.g. "." for
// English and "," for German.
func decimalSeparator(p *message.Printer) string {
	one := p.Sprint(number.Decimal(1, number.Scale(1)))
	if len(one) < 3 {
		return "."
	}
	return one[1 : len(one)-1]
}

// Text renders the full summary: a balance line per member followed by the
// list of transfers.
func (r *Report) Text() string {
	var b strings.Builder

	b.WriteString("[Settlement]")
	if r.Title != "" {
		b.WriteString(" ")
		b.WriteString(r.Title)
	}
	b.WriteString("\n\nBalances\n")
	for _, id := range r.balanceOrder() {
		amount := r.Balances[id]
		b.WriteString("  ")
		b.WriteString(r.Name(id))
		b.WriteString(": ")
		b.WriteString(r.FormatAmount(amount, true))
		switch {
		case amount > 0:
			b.WriteString(" (receives)")
		case amount < 0:
			b.WriteString(" (pays)")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTransfers\n")
	if r.Settled() {
		b.WriteString("  Everyone is settled up 🎉\n")
		return b.String()
	}
	for _, t := range r.Transfers {
		b.WriteString("  ")
		b.WriteString(r.Name(t.From))
		b.WriteString(" → ")
		b.WriteString(r.Name(t.To))
		b.WriteString(": ")
		b.WriteString(r.FormatAmount(t.Amount, false))
		b.WriteString("\n")
	}
	return b.String()
}

// balanceOrder lists member ids in Members order, then any remaining
// balance ids sorted.
func (r *Report) balanceOrder() []string {
	order := make([]string, 0, len(r.Balances))
	seen := make(map[string]bool, len(r.Members))
	for _, m := range r.Members {
		if _, ok := r.Balances[m.ID]; ok && !seen[m.ID] {
			order = append(order, m.ID)
			seen[m.ID] = true
		}
	}

	var rest []string
	for id := range r.Balances {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}
