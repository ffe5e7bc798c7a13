package service

// Group is the wire form of a group.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt int64     `json:"createdAt"`
	Members   []*Member `json:"members,omitempty"`
}

// Member is the wire form of a group member.
type Member struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Expense is the wire form of an expense. Amount is decimal text in the
// server's currency, e.g. "1200" for JPY or "12.50" for USD.
type Expense struct {
	ID             string   `json:"id"`
	GroupID        string   `json:"groupId"`
	Title          string   `json:"title"`
	Amount         string   `json:"amount"`
	PayerID        string   `json:"payerId"`
	ParticipantIDs []string `json:"participantIds"`
	Category       string   `json:"category"`
	CategoryLabel  string   `json:"categoryLabel"`
	CategoryIcon   string   `json:"categoryIcon"`
	CreatedAt      int64    `json:"createdAt"`
}

// MemberBalance is one member's line in a settlement.
type MemberBalance struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Paid     string `json:"paid"`
	Share    string `json:"share"`
	Waived   string `json:"waived"`
	Net      string `json:"net"`
	Rounded  string `json:"rounded"`
}

// Transfer is one payment instruction in a settlement.
type Transfer struct {
	FromID   string `json:"fromId"`
	FromName string `json:"fromName"`
	ToID     string `json:"toId"`
	ToName   string `json:"toName"`
	Amount   string `json:"amount"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct {
	GroupID string `json:"groupId"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type RemoveMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

type RemoveMemberResponse struct{}

type CreateExpenseRequest struct {
	GroupID        string   `json:"groupId"`
	Title          string   `json:"title"`
	Amount         string   `json:"amount"`
	PayerID        string   `json:"payerId"`
	ParticipantIDs []string `json:"participantIds"`
	Category       string   `json:"category"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// ListExpensesRequest lists a group's expenses. A non-empty Query keeps only
// expenses whose title contains it, ignoring case.
type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
	Query   string `json:"query"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
	Total    string     `json:"total"`
}

type UpdateExpenseRequest struct {
	GroupID        string   `json:"groupId"`
	ExpenseID      string   `json:"expenseId"`
	Title          string   `json:"title"`
	Amount         string   `json:"amount"`
	PayerID        string   `json:"payerId"`
	ParticipantIDs []string `json:"participantIds"`
	Category       string   `json:"category"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetSettlementRequest struct {
	GroupID string `json:"groupId"`
}

type GetSettlementResponse struct {
	Currency        string           `json:"currency"`
	Balances        []*MemberBalance `json:"balances"`
	Transfers       []*Transfer      `json:"transfers"`
	Settled         bool             `json:"settled"`
	SkippedExpenses int              `json:"skippedExpenses"`
	Summary         string           `json:"summary"`
}
