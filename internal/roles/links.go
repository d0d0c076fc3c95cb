package roles

// NavLink is a labelled navigation target shown in the page shell.
type NavLink struct {
	Path  string
	Label string
}

// opsLinks are the shared operations sections merchants see.
var opsLinks = []NavLink{
	{Path: "/suppliers", Label: "Suppliers"},
	{Path: "/purchase-orders", Label: "Purchase Orders"},
	{Path: "/transfers", Label: "Transfers"},
	{Path: "/returns", Label: "Returns"},
	{Path: "/sales", Label: "Sales"},
	{Path: "/expenses", Label: "Expenses"},
	{Path: "/analytics", Label: "Reporting"},
}

// NavLinks returns the shell navigation for a canonical role. A role with no
// canonical mapping gets only its dashboard link.
func NavLinks(role Role) []NavLink {
	dashboard := NavLink{Path: DefaultRoute(role), Label: "Dashboard"}
	messages := NavLink{Path: "/messages", Label: "Messages"}

	switch role {
	case Merchant:
		links := []NavLink{
			dashboard,
			{Path: "/merchant/graphs", Label: "Store Graphs"},
			{Path: "/merchant/invites", Label: "Admin Invites"},
			{Path: "/merchant/stores", Label: "Add Store"},
			messages,
		}
		return append(links, opsLinks...)
	case Admin:
		return []NavLink{
			dashboard,
			{Path: "/admin/reports", Label: "Reports"},
			messages,
		}
	case Clerk:
		return []NavLink{dashboard, messages}
	default:
		return []NavLink{dashboard}
	}
}
