package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/report"
	"github.com/mmynk/splitbill/internal/storage"
)

// SettlementObserver is notified of every settlement computed.
type SettlementObserver interface {
	ObserveSettlement(transfers, skipped int)
}

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	store    storage.Store
	currency calculator.Currency
	observer SettlementObserver
}

// SettlementOption configures a SettlementService.
type SettlementOption func(*SettlementService)

// WithSettlementObserver makes the service report each settlement to o.
func WithSettlementObserver(o SettlementObserver) SettlementOption {
	return func(s *SettlementService) {
		s.observer = o
	}
}

// NewSettlementService creates a SettlementService for the given currency.
// The service is not changed after construction, so handlers may share it.
func NewSettlementService(store storage.Store, currency calculator.Currency, opts ...SettlementOption) *SettlementService {
	s := &SettlementService{store: store, currency: currency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSettlement computes every member's balance and the transfers that
// settle the group.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	slog.Info("GetSettlement request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetSettlement failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	var (
		members  []*models.Member
		expenses []*models.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.store.ListMembers(gctx, group.ID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(gctx, group.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("GetSettlement failed to load group", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	calcExpenses := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		calcExpenses[i] = toCalculatorExpense(e)
	}

	// Stored rows passed validation on write, so a failure here means the
	// database was edited by hand.
	if err := calculator.ValidateExpenses(calcExpenses); err != nil {
		slog.Error("GetSettlement found invalid expenses", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}

	summary := calculator.AggregateExpenses(ids, calcExpenses)
	balances := summary.Balances()
	rounded := calculator.RoundBalances(balances)
	transfers := calculator.Plan(balances)

	rep := &report.Report{
		Title:     group.Name,
		Currency:  s.currency,
		Balances:  rounded,
		Transfers: transfers,
	}
	for _, m := range members {
		rep.Members = append(rep.Members, report.Member{ID: m.ID, Name: m.Name})
	}

	resp := &GetSettlementResponse{
		Currency:        s.currency.Code,
		Balances:        make([]*MemberBalance, 0, len(members)),
		Transfers:       make([]*Transfer, 0, len(transfers)),
		Settled:         rep.Settled(),
		SkippedExpenses: summary.Skipped,
		Summary:         rep.Text(),
	}
	for _, m := range members {
		totals := summary.Totals[m.ID]
		resp.Balances = append(resp.Balances, &MemberBalance{
			MemberID: m.ID,
			Name:     m.Name,
			Paid:     totals.Paid.String(s.currency),
			Share:    totals.Share.Decimal(s.currency).String(),
			Waived:   totals.Waived.Decimal(s.currency).String(),
			Net:      totals.Net().Decimal(s.currency).String(),
			Rounded:  rounded[m.ID].String(s.currency),
		})
	}
	for _, t := range transfers {
		resp.Transfers = append(resp.Transfers, &Transfer{
			FromID:   t.From,
			FromName: rep.Name(t.From),
			ToID:     t.To,
			ToName:   rep.Name(t.To),
			Amount:   t.Amount.String(s.currency),
		})
	}

	if s.observer != nil {
		s.observer.ObserveSettlement(len(transfers), summary.Skipped)
	}

	slog.Info("GetSettlement successful",
		"group_id", group.ID,
		"members", len(members),
		"expenses", len(expenses),
		"transfers", len(transfers),
		"skipped", summary.Skipped,
	)

	return connect.NewResponse(resp), nil
}
