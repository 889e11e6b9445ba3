package handlers

import (
	"time"

	"github.com/taskmate/web-services/internal/backend"
)

// Built-in sample datasets keep every console page demoable when the backend
// is down or not yet deployed. Pages that fall back to these show a banner.

func sampleUsers() []backend.User {
	return []backend.User{
		{ID: 101, FirstName: "Sara", LastName: "Ahmadi", Username: "sara.ahmadi", Language: "fa", Timezone: "Asia/Tehran"},
		{ID: 102, FirstName: "Omar", LastName: "Haddad", Username: "omar.haddad", Language: "ar", Timezone: "Asia/Dubai"},
		{ID: 103, FirstName: "Jane", LastName: "Miller", Username: "jane.m", Language: "en", Timezone: "Europe/Berlin"},
		{ID: 104, FirstName: "Reza", LastName: "Karimi", Username: "rezak", Language: "fa", Timezone: "Asia/Tehran"},
	}
}

func sampleOrgs() []backend.Organization {
	return []backend.Organization{
		{ID: 11, Name: "Acme Logistics", Plan: "business", OwnerUserID: 103},
		{ID: 12, Name: "Parsian Studio", Plan: "pro", OwnerUserID: 101},
		{ID: 13, Name: "Desert Labs", Plan: "free", OwnerUserID: 102},
	}
}

func sampleTeams() []backend.Team {
	return []backend.Team{
		{ID: 21, OrganizationID: 11, Name: "Dispatch"},
		{ID: 22, OrganizationID: 11, Name: "Warehouse"},
		{ID: 23, OrganizationID: 12, Name: "Design"},
	}
}

func samplePayments() []backend.Payment {
	created := time.Date(2025, time.June, 2, 10, 30, 0, 0, time.UTC)
	return []backend.Payment{
		{ID: 31, OrganizationID: 11, Provider: "stripe", Amount: 120, Asset: "USD", Status: "paid", CreatedAt: created},
		{ID: 32, OrganizationID: 12, Provider: "crypto", Amount: 64, Asset: "USDT", Status: "pending", CreatedAt: created.AddDate(0, 0, 3)},
		{ID: 33, OrganizationID: 13, Provider: "stripe", Amount: 15, Asset: "USD", Status: "failed", CreatedAt: created.AddDate(0, 0, 5)},
	}
}

func samplePaymentsSummary() *backend.PaymentsSummary {
	return &backend.PaymentsSummary{TotalRevenue: 199, PaidCount: 1, PendingCount: 1, FailedCount: 1}
}

func sampleAnalyticsSummary() *backend.AnalyticsSummary {
	return &backend.AnalyticsSummary{TotalUsers: 1240, ActiveProjects: 87, CompletedTasks: 5310, OverdueTasks: 42}
}

func sampleInsights() []backend.Insight {
	return []backend.Insight{
		{Title: "Task completion", Detail: "Completed tasks rose week over week.", Trend: 6.4},
		{Title: "New signups", Detail: "Signups held steady across regions.", Trend: 0.8},
		{Title: "Overdue load", Detail: "Overdue tasks dropped after reminder rollout.", Trend: -3.1},
	}
}

func sampleBlogPosts() []backend.BlogPost {
	created := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)
	return []backend.BlogPost{
		{ID: 41, Lang: "en", Slug: "introducing-weekly-reports", Title: "Introducing weekly reports", ContentMarkdown: "Managers can now receive a **weekly digest** of team progress.", Author: "TaskMate Team", Published: true, CreatedAt: created},
		{ID: 42, Lang: "fa", Slug: "yaadavar-haye-hooshmand", Title: "یادآورهای هوشمند", ContentMarkdown: "مهلت‌ها را دیگر فراموش نکنید.", Author: "TaskMate Team", Published: true, CreatedAt: created.AddDate(0, 0, 7)},
	}
}
