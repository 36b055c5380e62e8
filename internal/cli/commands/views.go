package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type friendView struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Email             *string           `json:"email"`
	Phone             *string           `json:"phone"`
	Birthday          *string           `json:"birthday"`
	Anniversary       *string           `json:"anniversary"`
	Partner           *string           `json:"partner"`
	Kids              []string          `json:"kids"`
	JobTitle          *string           `json:"job_title"`
	Company           *string           `json:"company"`
	Address           *string           `json:"address"`
	Notes             *string           `json:"notes"`
	LastContactDate   *string           `json:"last_contact_date"`
	ProfilePictureURL *string           `json:"profile_picture_url"`
	NextBirthday      *string           `json:"next_birthday"`
	DaysUntilBirthday *int              `json:"days_until_birthday"`
	Interactions      []interactionView `json:"interactions"`
}

type friendRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type interactionView struct {
	ID              int64      `json:"id"`
	FriendID        int64      `json:"friend_id"`
	Type            string     `json:"type"`
	Description     string     `json:"description"`
	InteractionDate string     `json:"interaction_date"`
	Friend          *friendRef `json:"friend"`
}

type pageView[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

type dashboardView struct {
	AsOf               string            `json:"as_of"`
	UpcomingBirthdays  []friendView      `json:"upcoming_birthdays"`
	RecentFriends      []friendView      `json:"recent_friends"`
	RecentInteractions []interactionView `json:"recent_interactions"`
	NeedsContact       []friendView      `json:"needs_contact"`
	Stats              struct {
		TotalFriends          int64 `json:"total_friends"`
		InteractionsThisMonth int64 `json:"interactions_this_month"`
		UpcomingBirthdays     int   `json:"upcoming_birthdays"`
		NeedsContact          int   `json:"needs_contact"`
	} `json:"stats"`
}

func str(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func (it interactionView) friendName() string {
	if it.Friend != nil {
		return it.Friend.Name
	}
	return fmt.Sprintf("#%d", it.FriendID)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printFriends(w io.Writer, list []friendView) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tBIRTHDAY\tLAST CONTACT")
	for _, f := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.Name, str(f.Email), str(f.Birthday), str(f.LastContactDate))
	}
	_ = tw.Flush()
}

func printBirthdays(w io.Writer, list []friendView) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tNEXT BIRTHDAY\tIN DAYS")
	for _, f := range list {
		days := "-"
		if f.DaysUntilBirthday != nil {
			days = fmt.Sprint(*f.DaysUntilBirthday)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.ID, f.Name, str(f.NextBirthday), days)
	}
	_ = tw.Flush()
}

func printInteractions(w io.Writer, list []interactionView, withFriend bool) {
	tw := newTable(w)
	if withFriend {
		fmt.Fprintln(tw, "ID\tDATE\tFRIEND\tTYPE\tDESCRIPTION")
	} else {
		fmt.Fprintln(tw, "ID\tDATE\tTYPE\tDESCRIPTION")
	}
	for _, it := range list {
		if withFriend {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", it.ID, it.InteractionDate, it.friendName(), it.Type, it.Description)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.InteractionDate, it.Type, it.Description)
		}
	}
	_ = tw.Flush()
}

func printPageFooter[T any](w io.Writer, p pageView[T]) {
	if p.Total == 0 {
		return
	}
	fmt.Fprintf(w, "Showing %d-%d of %d (page %d of %d)\n", p.From, p.To, p.Total, p.CurrentPage, p.LastPage)
}

func printFriend(w io.Writer, f friendView) {
	tw := newTable(w)
	row := func(k, v string) { fmt.Fprintf(tw, "%s:\t%s\n", k, v) }
	row("ID", fmt.Sprint(f.ID))
	row("Name", f.Name)
	row("Email", str(f.Email))
	row("Phone", str(f.Phone))
	row("Birthday", str(f.Birthday))
	row("Anniversary", str(f.Anniversary))
	row("Partner", str(f.Partner))
	kids := "-"
	if len(f.Kids) > 0 {
		kids = strings.Join(f.Kids, ", ")
	}
	row("Kids", kids)
	row("Job title", str(f.JobTitle))
	row("Company", str(f.Company))
	row("Address", str(f.Address))
	row("Notes", str(f.Notes))
	row("Last contact", str(f.LastContactDate))
	row("Picture", str(f.ProfilePictureURL))
	_ = tw.Flush()
	if len(f.Interactions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Interactions:")
		printInteractions(w, f.Interactions, false)
	}
}
