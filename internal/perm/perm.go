// Package perm holds the static role-permission table: which status
// transitions each role may perform and which coarse capabilities it
// carries. It is the single place the transition edge set is encoded.
package perm

import "github.com/eliman/taskdesk/internal/model"

// edge is one directed (from, to) transition in a role's graph.
type edge struct {
	from, to model.Status
}

// privilegedEdges is the fully-connected graph over the four states
// minus self-loops: twelve directed edges. ADMIN and TEAM_LEAD share
// it, which makes DONE reversible for them.
var privilegedEdges = []edge{
	{model.StatusQueued, model.StatusInProgress},
	{model.StatusQueued, model.StatusInReview},
	{model.StatusQueued, model.StatusDone},
	{model.StatusInProgress, model.StatusQueued},
	{model.StatusInProgress, model.StatusInReview},
	{model.StatusInProgress, model.StatusDone},
	{model.StatusInReview, model.StatusQueued},
	{model.StatusInReview, model.StatusInProgress},
	{model.StatusInReview, model.StatusDone},
	{model.StatusDone, model.StatusQueued},
	{model.StatusDone, model.StatusInProgress},
	{model.StatusDone, model.StatusInReview},
}

// restrictedEdges is the forward-only subset for ACCOUNTANT and INTERN.
// They can start work and send it to review, nothing else.
var restrictedEdges = []edge{
	{model.StatusQueued, model.StatusInProgress},
	{model.StatusInProgress, model.StatusInReview},
}

var transitions = map[model.Role][]edge{
	model.RoleAdmin:      privilegedEdges,
	model.RoleTeamLead:   privilegedEdges,
	model.RoleAccountant: restrictedEdges,
	model.RoleIntern:     restrictedEdges,
}

// IsTransitionAllowed reports whether role may move a task from one
// status to another. Self-loops are never allowed for any role.
func IsTransitionAllowed(role model.Role, from, to model.Status) bool {
	for _, e := range transitions[role] {
		if e.from == from && e.to == to {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the statuses reachable from the given
// status for the role, in pipeline order. The order is stable so UIs
// and tests can rely on it.
func AvailableTransitions(role model.Role, from model.Status) []model.Status {
	var out []model.Status
	for _, s := range model.AllStatuses {
		if IsTransitionAllowed(role, from, s) {
			out = append(out, s)
		}
	}
	return out
}

// Capabilities are the coarse, non-transition permissions of a role.
type Capabilities struct {
	ManageUsers      bool
	ManageCategories bool
	ManageClients    bool
	ViewAllTasks     bool
	CreateTasks      bool
	AssignToAnyone   bool
	AssignToNonAdmin bool
}

var capabilities = map[model.Role]Capabilities{
	model.RoleAdmin: {
		ManageUsers:      true,
		ManageCategories: true,
		ManageClients:    true,
		ViewAllTasks:     true,
		CreateTasks:      true,
		AssignToAnyone:   true,
		AssignToNonAdmin: true,
	},
	model.RoleTeamLead: {
		ViewAllTasks:     true,
		CreateTasks:      true,
		AssignToNonAdmin: true,
	},
	model.RoleAccountant: {},
	model.RoleIntern:     {},
}

// For returns the capability set of a role. Unknown roles get the empty
// set.
func For(role model.Role) Capabilities {
	return capabilities[role]
}
