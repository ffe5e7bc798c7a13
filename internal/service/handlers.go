package service

import (
	"net/http"

	"connectrpc.com/connect"
)

const (
	GroupServiceName      = "splitbill.v1.GroupService"
	ExpenseServiceName    = "splitbill.v1.ExpenseService"
	SettlementServiceName = "splitbill.v1.SettlementService"
)

const (
	GroupServiceCreateGroupProcedure  = "/splitbill.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure     = "/splitbill.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure   = "/splitbill.v1.GroupService/ListGroups"
	GroupServiceUpdateGroupProcedure  = "/splitbill.v1.GroupService/UpdateGroup"
	GroupServiceDeleteGroupProcedure  = "/splitbill.v1.GroupService/DeleteGroup"
	GroupServiceAddMemberProcedure    = "/splitbill.v1.GroupService/AddMember"
	GroupServiceListMembersProcedure  = "/splitbill.v1.GroupService/ListMembers"
	GroupServiceRemoveMemberProcedure = "/splitbill.v1.GroupService/RemoveMember"

	ExpenseServiceCreateExpenseProcedure = "/splitbill.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure    = "/splitbill.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/splitbill.v1.ExpenseService/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure = "/splitbill.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/splitbill.v1.ExpenseService/DeleteExpense"

	SettlementServiceGetSettlementProcedure = "/splitbill.v1.SettlementService/GetSettlement"
)

// routes dispatches each procedure path to its unary handler.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

// handlerOptions puts the JSON codec in front of caller options.
func handlerOptions(opts []connect.HandlerOption) connect.HandlerOption {
	return connect.WithHandlerOptions(append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)...)
}

// NewGroupServiceHandler builds an HTTP handler for GroupService. It returns
// the path prefix to mount the handler on.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return "/" + GroupServiceName + "/", routes{
		GroupServiceCreateGroupProcedure:  connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, o),
		GroupServiceGetGroupProcedure:     connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, o),
		GroupServiceListGroupsProcedure:   connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, o),
		GroupServiceUpdateGroupProcedure:  connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, o),
		GroupServiceDeleteGroupProcedure:  connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, o),
		GroupServiceAddMemberProcedure:    connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, o),
		GroupServiceListMembersProcedure:  connect.NewUnaryHandler(GroupServiceListMembersProcedure, svc.ListMembers, o),
		GroupServiceRemoveMemberProcedure: connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, o),
	}
}

// NewExpenseServiceHandler builds an HTTP handler for ExpenseService.
func NewExpenseServiceHandler(svc *ExpenseService, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", routes{
		ExpenseServiceCreateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, o),
		ExpenseServiceGetExpenseProcedure:    connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, o),
		ExpenseServiceListExpensesProcedure:  connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, o),
		ExpenseServiceUpdateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, o),
		ExpenseServiceDeleteExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, o),
	}
}

// NewSettlementServiceHandler builds an HTTP handler for SettlementService.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	return "/" + SettlementServiceName + "/", routes{
		SettlementServiceGetSettlementProcedure: connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, o),
	}
}
