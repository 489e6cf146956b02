package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/miniapps-backend/internal/config"
	"github.com/segyhp/miniapps-backend/internal/repository"
)

func main() {
	log.Println("Starting repayment scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repaymentRepo := repository.NewRepaymentRepository(db)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds())

	// Schedule tasks
	setupCronJobs(c, cfg, repaymentRepo)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, repayments repository.RepaymentRepository) {
	// Daily job reporting installments past due (runs at midnight)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		log.Println("Running daily overdue installment report...")
		reportOverdueInstallments(repayments)
	})
	if err != nil {
		log.Printf("Error scheduling overdue installment report: %v", err)
	}

	// Daily job reminding borrowers of upcoming installments (runs at 9 AM)
	_, err = c.AddFunc("0 0 9 * * *", func() {
		log.Println("Running payment reminder job...")
		sendPaymentReminders(repayments, cfg.Scheduler.ReminderWindowDays)
	})
	if err != nil {
		log.Printf("Error scheduling payment reminder job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}

// reportOverdueInstallments logs every pending installment whose due date has
// passed. Read-only: repayment state only moves through the API.
func reportOverdueInstallments(repayments repository.RepaymentRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	overdue, err := repayments.ListOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Overdue installment report failed: %v", err)
		return
	}

	for _, repayment := range overdue {
		log.Printf("Overdue: loan %s week %d, amount %s, due %s",
			repayment.LoanID, repayment.WeekNumber, repayment.Amount, repayment.DueDate.Format("2006-01-02"))
	}
	log.Printf("Overdue installment report complete: %d overdue", len(overdue))
}

// sendPaymentReminders logs installments coming due inside the reminder
// window.
func sendPaymentReminders(repayments repository.RepaymentRepository, windowDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	upcoming, err := repayments.ListDueBetween(ctx, now, now.AddDate(0, 0, windowDays))
	if err != nil {
		log.Printf("Payment reminder job failed: %v", err)
		return
	}

	for _, repayment := range upcoming {
		log.Printf("Reminder: loan %s week %d, amount %s due %s",
			repayment.LoanID, repayment.WeekNumber, repayment.Amount, repayment.DueDate.Format("2006-01-02"))
	}
	log.Printf("Payment reminder job complete: %d upcoming", len(upcoming))
}
