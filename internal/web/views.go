package web

import (
	"time"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/notifications"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/roles"
)

// authView feeds the login and admin registration pages.
type authView struct {
	AppName     string
	Error       string
	Email       string
	InviteToken string
	FirstName   string
	LastName    string
	Phone       string
}

// shellView is the shared page chrome for signed-in pages.
type shellView struct {
	AppName  string
	Title    string
	UserName string
	Tab      string
	Links    []roles.NavLink
	Badge    string
	Panel    panelView
}

// panelView feeds the notification panel fragment.
type panelView struct {
	Open        bool
	Loading     bool
	Badge       string
	Error       string
	ShowMarkAll bool
	Items       []panelItemView
}

type panelItemView struct {
	ID      int
	Title   string
	Message string
	When    string
	Unread  bool
}

func toPanelView(state notifications.State, now time.Time) panelView {
	items := make([]panelItemView, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, panelItemView{
			ID:      item.ID,
			Title:   item.Title,
			Message: item.Message,
			When:    relativeTime(now, item.CreatedAt),
			Unread:  !item.IsRead,
		})
	}
	var badge string
	if state.UnreadCount > 0 {
		badge = notifications.BadgeText(state.UnreadCount)
	}
	return panelView{
		Open:        state.Open,
		Loading:     state.Loading,
		Badge:       badge,
		Error:       state.LastError,
		ShowMarkAll: state.UnreadCount > 0,
		Items:       items,
	}
}

func displayName(profile api.Profile) string {
	if profile.FirstName != "" {
		return profile.FirstName
	}
	return profile.Email
}
