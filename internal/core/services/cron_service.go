package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs. Currently a single
// daily fund summary snapshot written to the log.
type CronService struct {
	cron      *cron.Cron
	dashboard *DashboardService
}

// NewCronService creates a new cron service
func NewCronService(dashboard *DashboardService) *CronService {
	return &CronService{
		cron:      cron.New(),
		dashboard: dashboard,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc("30 8 * * *", s.logFundSummary); err != nil {
		log.Printf("❌ Failed to schedule fund summary job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 CronService started (daily fund summary at 08:30)")
}

// Stop stops the scheduler; running jobs finish on their own
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) logFundSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := s.dashboard.GetFundSummary(ctx)
	if err != nil {
		log.Printf("❌ Fund summary job error: %v", err)
		return
	}

	log.Printf("📊 Fund summary: members=%d contributions=%.2f loans=%.2f repayments=%.2f outstanding=%.2f",
		summary.TotalMembers,
		summary.TotalContributions,
		summary.TotalLoans,
		summary.TotalRepayments,
		summary.OutstandingLoans,
	)
}
