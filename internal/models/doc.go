// Package models defines the records SplitBill stores for a group.
//
// # Models
//
//   - Group: a named set of people sharing expenses
//   - Member: a person in a group, identified by ID; names need not be unique
//   - Expense: one payment fronted by a member on behalf of participants
//
// Balances and transfers are not stored. They are computed on demand from a
// group's members and expenses by the calculator package.
//
// # Design Principles
//
// 1. **Identity by ID**: members are referenced by ID everywhere; the display
// name is only used for rendering
// 2. **Deleted members are tolerated**: expenses keep the IDs they were recorded
// with, even after a member is removed
// 3. **Integer money**: amounts are stored in the smallest currency unit
package models
