package backend

import "time"

// Domain types mirror the TaskMate backend's JSON responses. The backend is
// authoritative; these are the recognized subsets the consoles render.

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Language  string `json:"language"`
	Timezone  string `json:"timezone"`
}

type Organization struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Plan        string `json:"plan"`
	OwnerUserID int64  `json:"owner_user_id"`
}

type Team struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
}

type Payment struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Provider       string    `json:"provider"`
	Amount         float64   `json:"amount"`
	Asset          string    `json:"asset"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type PaymentsSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	PaidCount    int     `json:"paid_count"`
	PendingCount int     `json:"pending_count"`
	FailedCount  int     `json:"failed_count"`
}

type AnalyticsSummary struct {
	TotalUsers     int `json:"total_users"`
	ActiveProjects int `json:"active_projects"`
	CompletedTasks int `json:"completed_tasks"`
	OverdueTasks   int `json:"overdue_tasks"`
}

type Insight struct {
	Title  string  `json:"title"`
	Detail string  `json:"detail"`
	Trend  float64 `json:"trend"`
}

type BlogPost struct {
	ID              int64     `json:"id"`
	Lang            string    `json:"lang"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	ContentMarkdown string    `json:"content_markdown"`
	Author          string    `json:"author"`
	Published       bool      `json:"published"`
	CreatedAt       time.Time `json:"created_at"`
}

type BlogPostCreate struct {
	Lang            string `json:"lang"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	ContentMarkdown string `json:"content_markdown"`
	Author          string `json:"author"`
	Published       bool   `json:"published"`
}

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ContactMessage is a marketing-site form submission forwarded verbatim.
type ContactMessage struct {
	Kind     string `json:"kind"` // "contact" | "enterprise"
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Company  string `json:"company,omitempty"`
	TeamSize string `json:"team_size,omitempty"`
}
