package notifications

import (
	"strconv"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/roles"
)

// Notification categories as the server emits them.
const (
	CategoryPendingSupplyRequest = "pending_supply_request"
	CategorySupplyRequestStatus  = "supply_request_status"
	CategoryUnpaidInventory      = "unpaid_inventory"
	CategoryMessage              = "message"
	CategoryLowStock             = "low_stock"
)

// deepLink is one (category, role) → target row.
type deepLink struct {
	category string
	role     roles.Role
	target   string
}

// deepLinks is the priority-ordered routing table for notification clicks.
// First match wins.
var deepLinks = []deepLink{
	{CategoryPendingSupplyRequest, roles.Admin, "/admin?tab=requests"},
	{CategorySupplyRequestStatus, roles.Clerk, "/clerk?tab=requests"},
	{CategoryUnpaidInventory, roles.Admin, "/admin?tab=payments"},
	{CategoryMessage, roles.Admin, "/messages"},
	{CategoryMessage, roles.Merchant, "/messages"},
	{CategoryMessage, roles.Clerk, "/messages"},
	{CategoryLowStock, roles.Admin, "/admin?tab=requests"},
}

// RouteFor resolves the deep link a clicked notification navigates to for a
// canonical role. With no matching row the visitor lands on their dashboard.
func RouteFor(notification api.Notification, role roles.Role) string {
	for _, link := range deepLinks {
		if link.category == notification.Category && link.role == role {
			return link.target
		}
	}
	return roles.DefaultRoute(role)
}

// BadgeText renders the unread badge, clamped at "99+".
func BadgeText(unreadCount int) string {
	if unreadCount > 99 {
		return "99+"
	}
	return strconv.Itoa(unreadCount)
}
