// Package jobs schedules the background sweeps: coupon expiry and idle
// chat-session cleanup.
package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mistica/internal/config"
	"mistica/internal/services"
)

type Runner struct {
	cron    *cron.Cron
	coupons *services.CouponService
	chats   *services.ChatService
	cfg     config.JobsConfig
}

func NewRunner(cfg config.JobsConfig, coupons *services.CouponService, chats *services.ChatService) *Runner {
	return &Runner{
		cron:    cron.New(),
		coupons: coupons,
		chats:   chats,
		cfg:     cfg,
	}
}

func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc(r.cfg.CouponExpirySpec, r.expireCoupons); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc(r.cfg.ChatIdleSpec, r.closeIdleChats); err != nil {
		return err
	}
	r.cron.Start()
	zap.L().Info("background jobs started",
		zap.String("coupon_expiry", r.cfg.CouponExpirySpec),
		zap.String("chat_idle", r.cfg.ChatIdleSpec))
	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Runner) expireCoupons() {
	if n := r.coupons.ExpireSweep(time.Now()); n > 0 {
		zap.L().Info("expired coupons deactivated", zap.Int("count", n))
	}
}

func (r *Runner) closeIdleChats() {
	ttl := time.Duration(r.cfg.ChatIdleMinutes) * time.Minute
	if n := r.chats.CloseIdleSweep(ttl, time.Now()); n > 0 {
		zap.L().Info("idle chat sessions closed", zap.Int("count", n))
	}
}
