// cmd/worker-manager/workers.go
package main

import (
	"context"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/internal/common/aws"
	"pawmatch-workers/internal/common/camunda"
	"pawmatch-workers/internal/common/config"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/internal/common/validation"

	rs "pawmatch-workers/internal/workers/adoption/record-swipe"
	sa "pawmatch-workers/internal/workers/catalog/search-animals"
	cms "pawmatch-workers/internal/workers/matching/calculate-match-score"
	dup "pawmatch-workers/internal/workers/matching/derive-user-profile"
	gmr "pawmatch-workers/internal/workers/matching/generate-match-reasons"
	ra "pawmatch-workers/internal/workers/matching/rank-animals"
	ns "pawmatch-workers/internal/workers/notification/notify-shelter"
)

type deps struct {
	store     *catalog.Store
	search    *catalog.Search
	validator *validation.Validator
	log       logger.Logger
}

// registerWorkers builds every handler and opens the enabled workers. It
// returns how many were opened.
func registerWorkers(ctx context.Context, cfg *config.Config, set *camunda.WorkerSet, d deps) int {
	started := 0
	start := func(taskType string, handle func() camundaHandler) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			d.log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			return
		}
		if set.Start(taskType, wcfg, handle().Handle) {
			started++
		}
	}

	// --- Matching ---
	start(dup.TaskType, func() camundaHandler {
		return dup.NewHandler(dup.LoadConfig(cfg), d.store, d.validator, d.log)
	})
	start(cms.TaskType, func() camundaHandler {
		return cms.NewHandler(cms.LoadConfig(cfg), d.store, d.validator, d.log)
	})
	start(ra.TaskType, func() camundaHandler {
		return ra.NewHandler(ra.LoadConfig(cfg), d.store, d.validator, d.log)
	})
	start(gmr.TaskType, func() camundaHandler {
		return gmr.NewHandler(gmr.LoadConfig(cfg), d.store, d.validator, d.log)
	})

	// --- Catalog and adoption ---
	start(sa.TaskType, func() camundaHandler {
		return sa.NewHandler(sa.LoadConfig(cfg), d.search, d.validator, d.log)
	})
	start(rs.TaskType, func() camundaHandler {
		return rs.NewHandler(rs.LoadConfig(cfg), d.store, d.validator, d.log)
	})

	// --- Notification ---
	start(ns.TaskType, func() camundaHandler {
		nsCfg := ns.LoadConfig(cfg)
		var email ns.SESService
		var sms ns.SNSService
		region := cfg.Notifications.AWS.Region
		if nsCfg.EmailEnabled {
			if c, err := aws.NewSESClient(ctx, region); err != nil {
				d.log.Warn("SES client unavailable", map[string]interface{}{"error": err})
			} else {
				email = c
			}
		}
		if nsCfg.SMSEnabled {
			if c, err := aws.NewSNSClient(ctx, region); err != nil {
				d.log.Warn("SNS client unavailable", map[string]interface{}{"error": err})
			} else {
				sms = c
			}
		}
		return ns.NewHandler(nsCfg, d.store, email, sms, d.validator, d.log)
	})

	return started
}
