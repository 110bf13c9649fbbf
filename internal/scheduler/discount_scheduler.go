package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/pkg/logger"
)

// DiscountScheduler flips expired discounts off once a day so the
// storefront never has to filter on dates at read time.
type DiscountScheduler struct {
	cron            *cron.Cron
	discountService service.DiscountService
}

func NewDiscountScheduler(discountService service.DiscountService) *DiscountScheduler {
	return &DiscountScheduler{
		cron:            cron.New(),
		discountService: discountService,
	}
}

func (s *DiscountScheduler) Start() error {
	// Daily at 03:00, after the calendar day the discounts ended.
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled discount expiry sweep", nil)

		count, err := s.discountService.DeactivateExpired()
		if err != nil {
			logger.Error("Failed to deactivate expired discounts", err)
			return
		}

		logger.Info("Discount expiry sweep finished", map[string]interface{}{
			"deactivated": count,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for discount expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Discount scheduler started (daily at 3:00 AM)", nil)

	return nil
}

func (s *DiscountScheduler) Stop() {
	logger.Info("Stopping discount scheduler...", nil)
	s.cron.Stop()
	logger.Info("Discount scheduler stopped", nil)
}
