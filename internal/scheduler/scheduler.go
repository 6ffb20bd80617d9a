package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/config"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
	"github.com/alibiomar/ashe-admin-api/internal/repository/sheets"
	"github.com/alibiomar/ashe-admin-api/internal/service/notify"
	"github.com/alibiomar/ashe-admin-api/internal/service/stats"
)

// SnapshotStore persists scheduled KPI snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, report models.StatsReport) error
}

// Scheduler manages the recurring reporting tasks: the nightly KPI snapshot
// and the low-stock scan.
type Scheduler struct {
	cron      *cron.Cron
	statsSvc  stats.Service
	notifySvc notify.Service
	snapshots SnapshotStore
	exporter  sheets.Exporter
	cfg       config.ReportingConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. The exporter may be nil
// when sheet export is not configured.
func NewScheduler(cfg config.ReportingConfig, statsSvc stats.Service, notifySvc notify.Service, snapshots SnapshotStore, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts []cron.Option
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, scheduler falls back to local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:      cron.New(opts...),
		statsSvc:  statsSvc,
		notifySvc: notifySvc,
		snapshots: snapshots,
		exporter:  exporter,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the cron entries and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("snapshot_cron", s.cfg.SnapshotCron),
		zap.String("low_stock_cron", s.cfg.LowStockCron))

	if _, err := s.cron.AddFunc(s.cfg.SnapshotCron, s.takeSnapshot); err != nil {
		s.logger.Error("failed to schedule KPI snapshot", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.LowStockCron, s.scanLowStock); err != nil {
		s.logger.Error("failed to schedule low stock scan", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) takeSnapshot() {
	s.logger.Info("taking KPI snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.statsSvc.BuildReport(ctx)
	if err != nil {
		s.logger.Error("failed to build KPI snapshot", zap.Error(err))
		return
	}

	if err := s.snapshots.Save(ctx, *report); err != nil {
		s.logger.Error("failed to persist KPI snapshot", zap.Error(err))
	}

	if s.exporter == nil {
		return
	}
	if err := s.exporter.AppendSnapshotRow(ctx, *report); err != nil {
		s.logger.Error("failed to export KPI snapshot to sheet", zap.Error(err))
	} else {
		s.logger.Info("KPI snapshot exported")
	}
}

func (s *Scheduler) scanLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.statsSvc.BuildReport(ctx)
	if err != nil {
		s.logger.Error("failed to build report for low stock scan", zap.Error(err))
		return
	}

	alerts := append([]models.StockAlert{}, report.Inventory.OutOfStock...)
	alerts = append(alerts, report.Inventory.LowStock...)
	if len(alerts) == 0 {
		return
	}

	if err := s.notifySvc.SendLowStockAlert(ctx, alerts); err != nil {
		s.logger.Error("failed to send low stock alert", zap.Error(err))
	} else {
		s.logger.Info("low stock alert sent", zap.Int("alerts", len(alerts)))
	}
}
