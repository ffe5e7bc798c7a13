package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/report"
)

const defaultCurrency = "JPY"

// input is the YAML document read by settle.
type input struct {
	Title    string         `yaml:"title"`
	Currency string         `yaml:"currency"`
	Members  []memberInput  `yaml:"members"`
	Expenses []expenseInput `yaml:"expenses"`
}

type memberInput struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type expenseInput struct {
	Title        string     `yaml:"title"`
	Amount       amountText `yaml:"amount"`
	Payer        string     `yaml:"payer"`
	Participants []string   `yaml:"participants"`
}

// amountText keeps the literal text of an amount so that 12.50 is parsed as
// a decimal, never through float64.
type amountText string

func (a *amountText) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a number", n.Line)
	}
	*a = amountText(n.Value)
	return nil
}

// parseInput decodes a settle document. Unknown keys are rejected so that
// typos do not silently drop data.
func parseInput(r io.Reader) (*input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var in input
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("input is empty")
		}
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return &in, nil
}

// settlement is the computed result for one input document.
type settlement struct {
	Report  *report.Report
	Summary calculator.Summary
}

// settle validates the input and computes balances and transfers.
func (in *input) settle() (*settlement, error) {
	code := in.Currency
	if code == "" {
		code = defaultCurrency
	}
	currency, err := calculator.LookupCurrency(code)
	if err != nil {
		return nil, err
	}

	var errs []error
	ids := make([]string, 0, len(in.Members))
	seen := make(map[string]bool, len(in.Members))
	members := make([]report.Member, 0, len(in.Members))
	for i, m := range in.Members {
		switch {
		case m.ID == "":
			errs = append(errs, fmt.Errorf("member %d: id is required", i))
			continue
		case seen[m.ID]:
			errs = append(errs, fmt.Errorf("member %d: duplicate id %q", i, m.ID))
			continue
		}
		seen[m.ID] = true
		ids = append(ids, m.ID)

		name := m.Name
		if name == "" {
			name = m.ID
		}
		members = append(members, report.Member{ID: m.ID, Name: name})
	}

	expenses := make([]calculator.Expense, len(in.Expenses))
	for i, e := range in.Expenses {
		amount, err := calculator.ParseAmount(string(e.Amount), currency)
		if err != nil {
			errs = append(errs, fmt.Errorf("expense %d (%s): %w", i, e.Title, err))
			continue
		}
		expenses[i] = calculator.Expense{
			Amount:       amount,
			PayerID:      e.Payer,
			Participants: e.Participants,
		}
		if err := calculator.ValidateExpense(expenses[i]); err != nil {
			errs = append(errs, fmt.Errorf("expense %d (%s): %w", i, e.Title, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	// Every record is valid, so only the group total can fail here.
	if err := calculator.ValidateExpenses(expenses); err != nil {
		return nil, err
	}

	summary := calculator.AggregateExpenses(ids, expenses)
	balances := summary.Balances()

	return &settlement{
		Report: &report.Report{
			Title:     in.Title,
			Currency:  currency,
			Members:   members,
			Balances:  calculator.RoundBalances(balances),
			Transfers: calculator.Plan(balances),
		},
		Summary: summary,
	}, nil
}
